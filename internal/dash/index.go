package dash

const indexHTML = `<!doctype html>
<html lang="en">
<head>
  <meta charset="utf-8"/>
  <meta name="viewport" content="width=device-width, initial-scale=1"/>
  <title>Buff163 ↔ CSFloat Arbitrage</title>
  <style>
    :root { --bg:#f8fafc; --card:#fff; --muted:#6b7280; --chip:#e5e7eb; }
    body{margin:0;background:var(--bg);font:14px/1.4 ui-sans-serif,system-ui,-apple-system,Segoe UI,Roboto,Ubuntu; color:#111827;}
    .wrap{max-width:1280px;margin:24px auto;padding:0 16px;}
    .hdr{display:flex;align-items:flex-end;justify-content:space-between;margin-bottom:12px;}
    .state{font-size:12px;padding:2px 8px;border-radius:999px;background:#d1fae5;color:#065f46;}
    .filters{display:flex;flex-wrap:wrap;gap:8px;margin-bottom:12px;}
    .filters input,.filters select,.filters button{padding:6px 8px;border:1px solid #d1d5db;border-radius:8px;background:#fff;}
    table{width:100%;border-collapse:collapse;background:var(--card);border-radius:16px;overflow:hidden;box-shadow:0 10px 30px rgba(0,0,0,.06);}
    thead{background:#f3f4f6;} th,td{padding:10px 12px;text-align:left;} tbody tr{border-top:1px solid #f3f4f6;}
    th[data-col]{cursor:pointer;user-select:none;}
    .chip{display:inline-block;font-size:12px;padding:2px 8px;background:var(--chip);border-radius:999px;color:#374151;}
    .pct{padding:2px 8px;border-radius:8px;font-size:12px;}
    .pct.ok{background:#dcfce7;color:#166534;} .pct.bad{background:#fee2e2;color:#991b1b;}
    .sub{color:var(--muted);font-size:12px;margin:0;}
    .pager{display:flex;gap:8px;align-items:center;justify-content:flex-end;margin-top:8px;}
  </style>
</head>
<body>
<div class="wrap">
  <div class="hdr">
    <div>
      <h1 style="margin:0;font-size:22px;font-weight:600">Buff163 ↔ CSFloat Arbitrage</h1>
      <p class="sub" id="summary">waiting for first batch…</p>
    </div>
    <div id="state" class="state">live</div>
  </div>
  <div class="filters">
    <input id="search" placeholder="Search item or wear"/>
    <select id="category"><option value="all">All categories</option></select>
    <select id="wear"><option value="all">All wears</option><option>Factory New</option><option>Minimal Wear</option><option>Field-Tested</option><option>Well-Worn</option><option>Battle-Scarred</option><option>N/A</option></select>
    <select id="direction"><option value="all">Both directions</option><option>B→C</option><option>C→B</option></select>
    <select id="reliability"><option value="all">Any reliability</option><option>High</option><option>Medium</option><option>Low</option><option>N/A</option></select>
    <input id="minROI" type="number" step="0.1" placeholder="Min ROI %"/>
    <label><input id="profitable" type="checkbox"/> profitable only</label>
    <button id="clear">Clear</button>
  </div>
  <table>
    <thead>
      <tr>
        <th data-col="itemName">Item</th><th data-col="category">Category</th><th data-col="wear">Wear</th>
        <th data-col="buff163Price">Buff163</th><th data-col="csfloatPrice">CSFloat</th>
        <th data-col="percentDifference">Diff</th><th data-col="bestDirection">Best</th>
        <th data-col="bestProfit">Net profit</th><th data-col="bestROI">ROI</th>
        <th data-col="csfloatQty">Qty</th><th data-col="reliability">Reliability</th>
      </tr>
    </thead>
    <tbody id="rows"></tbody>
  </table>
  <div class="pager">
    <select id="pageSize"><option>10</option><option>25</option><option>50</option><option>100</option></select>
    <button id="prev">‹</button><span id="pageInfo" class="sub"></span><button id="next">›</button>
  </div>
  <p class="sub" style="margin-top:8px">B→C = buy on Buff163, sell on CSFloat. Costs include buyer and seller fees.</p>
</div>
<script>
  var st = {sort:'bestROI', order:'desc', page:0, pageSize:10, total:0};
  var cats = ['Gloves','Heavy','Knife','Pistol','Rifle','SMG','Shotgun','Sniper Rifle','Unknown'];
  cats.forEach(function(c){ var o=document.createElement('option'); o.textContent=c; document.getElementById('category').appendChild(o); });
  function $(id){ return document.getElementById(id); }
  function usd(x){ return (x==null||isNaN(x)) ? '-' : ('$'+Number(x).toLocaleString(undefined,{minimumFractionDigits:2,maximumFractionDigits:2})); }
  function pct(x){ return (x==null||isNaN(x)) ? '-' : (Number(x).toFixed(2)+'%'); }
  function esc(s){ return String(s==null?'':s).replace(/[&<>"]/g,function(c){return {'&':'&amp;','<':'&lt;','>':'&gt;','"':'&quot;'}[c];}); }
  function rowHTML(r){
    return '<tr>'
      + '<td><strong>' + esc(r.itemName) + '</strong>' + (r.statTrak?' <span class="chip">ST</span>':'') + (r.souvenir?' <span class="chip">SV</span>':'') + '</td>'
      + '<td><span class="chip">' + esc(r.category) + '</span></td>'
      + '<td>' + esc(r.wear) + '</td>'
      + '<td>' + usd(r.buff163Price) + '</td>'
      + '<td>' + usd(r.csfloatPrice) + '</td>'
      + '<td>' + pct(r.percentDifference) + '</td>'
      + '<td><span class="chip">' + esc(r.bestDirection) + '</span></td>'
      + '<td>' + usd(r.bestProfit) + '</td>'
      + '<td><span class="pct ' + (r.profitable?'ok':'bad') + '">' + pct(r.bestROI) + '</span></td>'
      + '<td>' + (r.csfloatQty==null?'-':r.csfloatQty) + '</td>'
      + '<td>' + esc(r.reliability) + '</td>'
      + '</tr>';
  }
  function params(){
    var p = new URLSearchParams();
    p.set('search', $('search').value);
    p.set('category', $('category').value);
    p.set('wear', $('wear').value);
    p.set('direction', $('direction').value);
    p.set('reliability', $('reliability').value);
    if ($('minROI').value) p.set('minROI', $('minROI').value);
    if ($('profitable').checked) p.set('profitable', 'true');
    p.set('sort', st.sort); p.set('order', st.order);
    p.set('page', st.page); p.set('pageSize', st.pageSize);
    return p.toString();
  }
  async function load(){
    try{
      var res = await fetch('/api/opportunities?'+params(), {cache:'no-store'});
      if(!res.ok) throw new Error('status '+res.status);
      var data = await res.json();
      st.total = data.total;
      $('rows').innerHTML = data.items.map(rowHTML).join('');
      var pages = Math.max(1, Math.ceil(data.total/st.pageSize));
      $('pageInfo').textContent = (st.page+1) + ' / ' + pages + ' (' + data.total + ' items)';
      $('state').textContent = 'live';
    }catch(e){
      $('state').textContent = 'offline';
    }
  }
  function refilter(){ st.page = 0; load(); }
  ['search','minROI'].forEach(function(id){ $(id).addEventListener('input', refilter); });
  ['category','wear','direction','reliability','profitable'].forEach(function(id){ $(id).addEventListener('change', refilter); });
  $('pageSize').addEventListener('change', function(){ st.pageSize = +this.value; refilter(); });
  $('prev').onclick = function(){ if(st.page>0){ st.page--; load(); } };
  $('next').onclick = function(){ if((st.page+1)*st.pageSize < st.total){ st.page++; load(); } };
  $('clear').onclick = function(){
    $('search').value=''; $('minROI').value=''; $('profitable').checked=false;
    ['category','wear','direction','reliability'].forEach(function(id){ $(id).value='all'; });
    refilter();
  };
  document.querySelectorAll('th[data-col]').forEach(function(th){
    th.onclick = function(){
      var c = th.getAttribute('data-col');
      if (st.sort === c) { st.order = st.order === 'desc' ? 'asc' : 'desc'; } else { st.sort = c; st.order = 'desc'; }
      load();
    };
  });
  function summary(s){
    if(!s || !s.batchId) return;
    var errs = s.feedErrors ? Object.keys(s.feedErrors) : [];
    $('summary').textContent = s.total + ' items, ' + s.profitable + ' profitable, best ROI ' + pct(s.bestROI)
      + ' · ' + new Date(s.computedAt).toLocaleTimeString() + (errs.length ? ' · unavailable: ' + errs.join(', ') : '');
  }
  function connect(){
    var ws = new WebSocket((location.protocol==='https:'?'wss://':'ws://') + location.host + '/ws');
    ws.onmessage = function(ev){ summary(JSON.parse(ev.data)); load(); };
    ws.onclose = function(){ setTimeout(connect, 3000); };
  }
  fetch('/api/summary').then(function(r){ return r.json(); }).then(summary).catch(function(){});
  load(); connect();
</script>
</body>
</html>`
