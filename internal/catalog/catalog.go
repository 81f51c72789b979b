// Package catalog extracts descriptive attributes from CS2 market item names,
// e.g. "StatTrak™ AK-47 | Redline (Field-Tested)".
package catalog

import (
	"sort"
	"strings"
)

const (
	Unknown = "Unknown"
	NoWear  = "N/A"
	Gloves  = "Gloves"
)

type Item struct {
	Category string
	Wear     string
	StatTrak bool
	Souvenir bool
}

var weaponCategories = map[string]string{
	"AK-47":         "Rifle",
	"M4A4":          "Rifle",
	"M4A1-S":        "Rifle",
	"FAMAS":         "Rifle",
	"Galil AR":      "Rifle",
	"AUG":           "Rifle",
	"SG 553":        "Rifle",
	"AWP":           "Sniper Rifle",
	"SSG 08":        "Sniper Rifle",
	"SCAR-20":       "Sniper Rifle",
	"G3SG1":         "Sniper Rifle",
	"Desert Eagle":  "Pistol",
	"Glock-18":      "Pistol",
	"USP-S":         "Pistol",
	"P2000":         "Pistol",
	"P250":          "Pistol",
	"Five-SeveN":    "Pistol",
	"Tec-9":         "Pistol",
	"CZ75-Auto":     "Pistol",
	"Dual Berettas": "Pistol",
	"R8 Revolver":   "Pistol",
	"Nova":          "Shotgun",
	"XM1014":        "Shotgun",
	"MAG-7":         "Shotgun",
	"Sawed-Off":     "Shotgun",
	"M249":          "Heavy",
	"Negev":         "Heavy",
	"MAC-10":        "SMG",
	"MP9":           "SMG",
	"MP7":           "SMG",
	"MP5-SD":        "SMG",
	"UMP-45":        "SMG",
	"P90":           "SMG",
	"PP-Bizon":      "SMG",

	"Karambit":        "Knife",
	"Butterfly Knife": "Knife",
	"Bayonet":         "Knife",
	"M9 Bayonet":      "Knife",
	"Flip Knife":      "Knife",
	"Gut Knife":       "Knife",
	"Falchion Knife":  "Knife",
	"Bowie Knife":     "Knife",
	"Shadow Daggers":  "Knife",
	"Huntsman Knife":  "Knife",
	"Navaja Knife":    "Knife",
	"Stiletto Knife":  "Knife",
	"Talon Knife":     "Knife",
	"Ursus Knife":     "Knife",
	"Classic Knife":   "Knife",
	"Paracord Knife":  "Knife",
	"Survival Knife":  "Knife",
	"Nomad Knife":     "Knife",
	"Skeleton Knife":  "Knife",
}

// Wears lists exterior conditions from best to worst.
var Wears = []string{
	"Factory New",
	"Minimal Wear",
	"Field-Tested",
	"Well-Worn",
	"Battle-Scarred",
}

// weaponsByLength is the lookup order for categories: longer names first so
// "M9 Bayonet" wins over "Bayonet" and "M4A1-S" is tried before shorter
// prefixes. Ties break alphabetically to keep the order stable.
var weaponsByLength = func() []string {
	out := make([]string, 0, len(weaponCategories))
	for w := range weaponCategories {
		out = append(out, w)
	}
	sort.Slice(out, func(i, j int) bool {
		if len(out[i]) != len(out[j]) {
			return len(out[i]) > len(out[j])
		}
		return out[i] < out[j]
	})
	return out
}()

// Categories returns the distinct categories Parse can produce.
func Categories() []string {
	seen := map[string]struct{}{Gloves: {}, Unknown: {}}
	for _, c := range weaponCategories {
		seen[c] = struct{}{}
	}
	out := make([]string, 0, len(seen))
	for c := range seen {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}

func Parse(name string) Item {
	it := Item{
		Category: Unknown,
		Wear:     NoWear,
		StatTrak: strings.Contains(name, "StatTrak™"),
		Souvenir: strings.Contains(name, "Souvenir"),
	}

	for _, w := range Wears {
		if strings.Contains(name, "("+w+")") {
			it.Wear = w
			break
		}
	}

	for _, w := range weaponsByLength {
		if strings.Contains(name, w) {
			it.Category = weaponCategories[w]
			break
		}
	}
	if strings.Contains(name, "Gloves") {
		it.Category = Gloves
	}
	return it
}
