package catalog

import (
	"strings"

	"element-quiz-service/internal/domain"
	"github.com/shopspring/decimal"
)

const (
	alkali     = domain.CategoryAlkaliMetal
	alkaline   = domain.CategoryAlkalineEarth
	transition = domain.CategoryTransition
	post       = domain.CategoryPostTransition
	metalloid  = domain.CategoryMetalloid
	nonmetal   = domain.CategoryNonmetal
	noble      = domain.CategoryNobleGas
	lanthanide = domain.CategoryLanthanide
	actinide   = domain.CategoryActinide
	unknown    = domain.CategoryUnknown
)

type row struct {
	symbol   string
	name     string
	category domain.Category
	mass     string // empty when no standard mass is assigned
	period   int
	group    int
}

// rows is indexed by atomic number - 1.
var rows = [...]row{
	{"H", "Hydrogen", nonmetal, "1.008", 1, 1},
	{"He", "Helium", noble, "4.0026", 1, 18},
	{"Li", "Lithium", alkali, "6.94", 2, 1},
	{"Be", "Beryllium", alkaline, "9.0122", 2, 2},
	{"B", "Boron", metalloid, "10.81", 2, 13},
	{"C", "Carbon", nonmetal, "12.011", 2, 14},
	{"N", "Nitrogen", nonmetal, "14.007", 2, 15},
	{"O", "Oxygen", nonmetal, "15.999", 2, 16},
	{"F", "Fluorine", nonmetal, "18.998", 2, 17},
	{"Ne", "Neon", noble, "20.180", 2, 18},
	{"Na", "Sodium", alkali, "22.990", 3, 1},
	{"Mg", "Magnesium", alkaline, "24.305", 3, 2},
	{"Al", "Aluminium", post, "26.982", 3, 13},
	{"Si", "Silicon", metalloid, "28.085", 3, 14},
	{"P", "Phosphorus", nonmetal, "30.974", 3, 15},
	{"S", "Sulfur", nonmetal, "32.06", 3, 16},
	{"Cl", "Chlorine", nonmetal, "35.45", 3, 17},
	{"Ar", "Argon", noble, "39.948", 3, 18},
	{"K", "Potassium", alkali, "39.098", 4, 1},
	{"Ca", "Calcium", alkaline, "40.078", 4, 2},
	{"Sc", "Scandium", transition, "44.956", 4, 3},
	{"Ti", "Titanium", transition, "47.867", 4, 4},
	{"V", "Vanadium", transition, "50.942", 4, 5},
	{"Cr", "Chromium", transition, "51.996", 4, 6},
	{"Mn", "Manganese", transition, "54.938", 4, 7},
	{"Fe", "Iron", transition, "55.845", 4, 8},
	{"Co", "Cobalt", transition, "58.933", 4, 9},
	{"Ni", "Nickel", transition, "58.693", 4, 10},
	{"Cu", "Copper", transition, "63.546", 4, 11},
	{"Zn", "Zinc", transition, "65.38", 4, 12},
	{"Ga", "Gallium", post, "69.723", 4, 13},
	{"Ge", "Germanium", metalloid, "72.630", 4, 14},
	{"As", "Arsenic", metalloid, "74.922", 4, 15},
	{"Se", "Selenium", nonmetal, "78.971", 4, 16},
	{"Br", "Bromine", nonmetal, "79.904", 4, 17},
	{"Kr", "Krypton", noble, "83.798", 4, 18},
	{"Rb", "Rubidium", alkali, "85.468", 5, 1},
	{"Sr", "Strontium", alkaline, "87.62", 5, 2},
	{"Y", "Yttrium", transition, "88.906", 5, 3},
	{"Zr", "Zirconium", transition, "91.224", 5, 4},
	{"Nb", "Niobium", transition, "92.906", 5, 5},
	{"Mo", "Molybdenum", transition, "95.95", 5, 6},
	{"Tc", "Technetium", transition, "98", 5, 7},
	{"Ru", "Ruthenium", transition, "101.07", 5, 8},
	{"Rh", "Rhodium", transition, "102.91", 5, 9},
	{"Pd", "Palladium", transition, "106.42", 5, 10},
	{"Ag", "Silver", transition, "107.87", 5, 11},
	{"Cd", "Cadmium", transition, "112.41", 5, 12},
	{"In", "Indium", post, "114.82", 5, 13},
	{"Sn", "Tin", post, "118.71", 5, 14},
	{"Sb", "Antimony", metalloid, "121.76", 5, 15},
	{"Te", "Tellurium", metalloid, "127.60", 5, 16},
	{"I", "Iodine", nonmetal, "126.90", 5, 17},
	{"Xe", "Xenon", noble, "131.29", 5, 18},
	{"Cs", "Caesium", alkali, "132.91", 6, 1},
	{"Ba", "Barium", alkaline, "137.33", 6, 2},
	{"La", "Lanthanum", lanthanide, "138.91", 8, 3},
	{"Ce", "Cerium", lanthanide, "140.12", 8, 4},
	{"Pr", "Praseodymium", lanthanide, "140.91", 8, 5},
	{"Nd", "Neodymium", lanthanide, "144.24", 8, 6},
	{"Pm", "Promethium", lanthanide, "145", 8, 7},
	{"Sm", "Samarium", lanthanide, "150.36", 8, 8},
	{"Eu", "Europium", lanthanide, "151.96", 8, 9},
	{"Gd", "Gadolinium", lanthanide, "157.25", 8, 10},
	{"Tb", "Terbium", lanthanide, "158.93", 8, 11},
	{"Dy", "Dysprosium", lanthanide, "162.50", 8, 12},
	{"Ho", "Holmium", lanthanide, "164.93", 8, 13},
	{"Er", "Erbium", lanthanide, "167.26", 8, 14},
	{"Tm", "Thulium", lanthanide, "168.93", 8, 15},
	{"Yb", "Ytterbium", lanthanide, "173.05", 8, 16},
	{"Lu", "Lutetium", lanthanide, "174.97", 8, 17},
	{"Hf", "Hafnium", transition, "178.49", 6, 4},
	{"Ta", "Tantalum", transition, "180.95", 6, 5},
	{"W", "Tungsten", transition, "183.84", 6, 6},
	{"Re", "Rhenium", transition, "186.21", 6, 7},
	{"Os", "Osmium", transition, "190.23", 6, 8},
	{"Ir", "Iridium", transition, "192.22", 6, 9},
	{"Pt", "Platinum", transition, "195.08", 6, 10},
	{"Au", "Gold", transition, "196.97", 6, 11},
	{"Hg", "Mercury", transition, "200.59", 6, 12},
	{"Tl", "Thallium", post, "204.38", 6, 13},
	{"Pb", "Lead", post, "207.2", 6, 14},
	{"Bi", "Bismuth", post, "208.98", 6, 15},
	{"Po", "Polonium", post, "209", 6, 16},
	{"At", "Astatine", metalloid, "210", 6, 17},
	{"Rn", "Radon", noble, "222", 6, 18},
	{"Fr", "Francium", alkali, "223", 7, 1},
	{"Ra", "Radium", alkaline, "226", 7, 2},
	{"Ac", "Actinium", actinide, "227", 9, 3},
	{"Th", "Thorium", actinide, "232.04", 9, 4},
	{"Pa", "Protactinium", actinide, "231.04", 9, 5},
	{"U", "Uranium", actinide, "238.03", 9, 6},
	{"Np", "Neptunium", actinide, "237", 9, 7},
	{"Pu", "Plutonium", actinide, "244", 9, 8},
	{"Am", "Americium", actinide, "243", 9, 9},
	{"Cm", "Curium", actinide, "247", 9, 10},
	{"Bk", "Berkelium", actinide, "247", 9, 11},
	{"Cf", "Californium", actinide, "251", 9, 12},
	{"Es", "Einsteinium", actinide, "252", 9, 13},
	{"Fm", "Fermium", actinide, "257", 9, 14},
	{"Md", "Mendelevium", actinide, "258", 9, 15},
	{"No", "Nobelium", actinide, "259", 9, 16},
	{"Lr", "Lawrencium", actinide, "266", 9, 17},
	{"Rf", "Rutherfordium", transition, "267", 7, 4},
	{"Db", "Dubnium", transition, "268", 7, 5},
	{"Sg", "Seaborgium", transition, "269", 7, 6},
	{"Bh", "Bohrium", transition, "270", 7, 7},
	{"Hs", "Hassium", transition, "277", 7, 8},
	{"Mt", "Meitnerium", unknown, "", 7, 9},
	{"Ds", "Darmstadtium", unknown, "", 7, 10},
	{"Rg", "Roentgenium", unknown, "", 7, 11},
	{"Cn", "Copernicium", unknown, "", 7, 12},
	{"Nh", "Nihonium", unknown, "", 7, 13},
	{"Fl", "Flerovium", unknown, "", 7, 14},
	{"Mc", "Moscovium", unknown, "", 7, 15},
	{"Lv", "Livermorium", unknown, "", 7, 16},
	{"Ts", "Tennessine", unknown, "", 7, 17},
	{"Og", "Oganesson", unknown, "", 7, 18},
}

var (
	table    = buildTable()
	bySymbol = index(table, func(e domain.Element) string { return strings.ToLower(e.Symbol) })
	byName   = index(table, func(e domain.Element) string { return strings.ToLower(e.Name) })
)

func buildTable() []domain.Element {
	out := make([]domain.Element, len(rows))
	for i, r := range rows {
		var mass decimal.NullDecimal
		if r.mass != "" {
			mass = decimal.NewNullDecimal(decimal.RequireFromString(r.mass))
		}
		out[i] = domain.Element{
			Symbol:       r.symbol,
			Name:         r.name,
			AtomicNumber: i + 1,
			Category:     r.category,
			AtomicMass:   mass,
			Period:       r.period,
			Group:        r.group,
		}
	}
	return out
}

func index(elements []domain.Element, key func(domain.Element) string) map[string]int {
	m := make(map[string]int, len(elements))
	for i, e := range elements {
		m[key(e)] = i
	}
	return m
}

// Elements returns a copy of the table ordered by atomic number.
func Elements() []domain.Element {
	out := make([]domain.Element, len(table))
	copy(out, table)
	return out
}

// BySymbol looks an element up by symbol, ignoring case.
func BySymbol(symbol string) (domain.Element, bool) {
	i, ok := bySymbol[strings.ToLower(strings.TrimSpace(symbol))]
	if !ok {
		return domain.Element{}, false
	}
	return table[i], true
}

// ByName looks an element up by name, ignoring case.
func ByName(name string) (domain.Element, bool) {
	i, ok := byName[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return domain.Element{}, false
	}
	return table[i], true
}

func ByNumber(n int) (domain.Element, bool) {
	if n < 1 || n > len(table) {
		return domain.Element{}, false
	}
	return table[n-1], true
}

// ByCategory filters the table. "all" and the empty category return every element.
func ByCategory(category domain.Category) []domain.Element {
	if category == "" || category == "all" {
		return Elements()
	}
	var out []domain.Element
	for _, e := range table {
		if e.Category == category {
			out = append(out, e)
		}
	}
	return out
}

// Categories lists the categories in table order of first appearance.
func Categories() []domain.Category {
	seen := make(map[domain.Category]struct{})
	var out []domain.Category
	for _, e := range table {
		if _, ok := seen[e.Category]; ok {
			continue
		}
		seen[e.Category] = struct{}{}
		out = append(out, e.Category)
	}
	return out
}
