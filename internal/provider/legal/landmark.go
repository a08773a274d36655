// Package legal implements the legal case providers: a landmark-case
// cache, a UK neutral-citation parser, the CourtListener search client,
// and a composite provider that chains them.
package legal

import (
	"context"
	"regexp"
	"strings"

	"github.com/citeflow/citeflow/internal/citation"
	"github.com/citeflow/citeflow/internal/provider"
)

type landmarkCase struct {
	CaseName     string
	Citation     string
	Year         string
	Court        string
	Jurisdiction string
}

const scotus = "Supreme Court of the United States"

// landmarkCases maps normalized case keys to their canonical citations.
// Lookups here are instant and keep the most common searches off the
// network entirely.
var landmarkCases = map[string]landmarkCase{
	"marbury v madison":             {"Marbury v. Madison", "5 U.S. 137", "1803", scotus, "US"},
	"mcculloch v maryland":          {"McCulloch v. Maryland", "17 U.S. 316", "1819", scotus, "US"},
	"gibbons v ogden":               {"Gibbons v. Ogden", "22 U.S. 1", "1824", scotus, "US"},
	"dred scott v sandford":         {"Dred Scott v. Sandford", "60 U.S. 393", "1857", scotus, "US"},
	"plessy v ferguson":             {"Plessy v. Ferguson", "163 U.S. 537", "1896", scotus, "US"},
	"lochner v new york":            {"Lochner v. New York", "198 U.S. 45", "1905", scotus, "US"},
	"schenck v united states":       {"Schenck v. United States", "249 U.S. 47", "1919", scotus, "US"},
	"korematsu v united states":     {"Korematsu v. United States", "323 U.S. 214", "1944", scotus, "US"},
	"brown v board":                 {"Brown v. Board of Education", "347 U.S. 483", "1954", scotus, "US"},
	"brown v board of education":    {"Brown v. Board of Education", "347 U.S. 483", "1954", scotus, "US"},
	"mapp v ohio":                   {"Mapp v. Ohio", "367 U.S. 643", "1961", scotus, "US"},
	"gideon v wainwright":           {"Gideon v. Wainwright", "372 U.S. 335", "1963", scotus, "US"},
	"nyt v sullivan":                {"New York Times Co. v. Sullivan", "376 U.S. 254", "1964", scotus, "US"},
	"new york times v sullivan":     {"New York Times Co. v. Sullivan", "376 U.S. 254", "1964", scotus, "US"},
	"griswold v connecticut":        {"Griswold v. Connecticut", "381 U.S. 479", "1965", scotus, "US"},
	"loving v virginia":             {"Loving v. Virginia", "388 U.S. 1", "1967", scotus, "US"},
	"miranda v arizona":             {"Miranda v. Arizona", "384 U.S. 436", "1966", scotus, "US"},
	"tinker v des moines":           {"Tinker v. Des Moines Indep. Community School Dist.", "393 U.S. 503", "1969", scotus, "US"},
	"brandenburg v ohio":            {"Brandenburg v. Ohio", "395 U.S. 444", "1969", scotus, "US"},
	"roe v wade":                    {"Roe v. Wade", "410 U.S. 113", "1973", scotus, "US"},
	"united states v nixon":         {"United States v. Nixon", "418 U.S. 683", "1974", scotus, "US"},
	"regents v bakke":               {"Regents of the University of California v. Bakke", "438 U.S. 265", "1978", scotus, "US"},
	"chevron v nrdc":                {"Chevron U.S.A. Inc. v. Natural Resources Defense Council, Inc.", "467 U.S. 837", "1984", scotus, "US"},
	"bush v gore":                   {"Bush v. Gore", "531 U.S. 98", "2000", scotus, "US"},
	"lawrence v texas":              {"Lawrence v. Texas", "539 U.S. 558", "2003", scotus, "US"},
	"dc v heller":                   {"District of Columbia v. Heller", "554 U.S. 570", "2008", scotus, "US"},
	"district of columbia v heller": {"District of Columbia v. Heller", "554 U.S. 570", "2008", scotus, "US"},
	"citizens united v fec":         {"Citizens United v. FEC", "558 U.S. 310", "2010", scotus, "US"},
	"obergefell v hodges":           {"Obergefell v. Hodges", "576 U.S. 644", "2015", scotus, "US"},
	"montgomery v louisiana":        {"Montgomery v. Louisiana", "577 U.S. 190", "2016", scotus, "US"},
	"dobbs v jackson":               {"Dobbs v. Jackson Women's Health Organization", "597 U.S. 215", "2022", scotus, "US"},
	"palsgraf v lirr":               {"Palsgraf v. Long Island R.R. Co.", "248 N.Y. 339", "1928", "N.Y.", "US"},
	"macpherson v buick":            {"MacPherson v. Buick Motor Co.", "217 N.Y. 382", "1916", "N.Y.", "US"},
	"tarasoff v regents":            {"Tarasoff v. Regents of the University of California", "17 Cal. 3d 425", "1976", "Cal.", "US"},
	"in re quinlan":                 {"In re Quinlan", "355 A.2d 647", "1976", "N.J.", "US"},
	"greenspan v osheroff":          {"Greenspan v. Osheroff", "232 Va. 388", "1986", "Supreme Court of Virginia", "US"},
	"united states v carroll towing": {"United States v. Carroll Towing Co.", "159 F.2d 169", "1947", "2d Cir.", "US"},
	"kitzmiller v dover":             {"Kitzmiller v. Dover Area School Dist.", "400 F. Supp. 2d 707", "2005", "M.D. Pa.", "US"},
}

// aliases maps one-word shorthand to full cache keys.
var aliases = map[string]string{
	"dobbs":           "dobbs v jackson",
	"obergefell":      "obergefell v hodges",
	"citizens united": "citizens united v fec",
	"heller":          "dc v heller",
	"dred scott":      "dred scott v sandford",
	"miranda":         "miranda v arizona",
	"roe":             "roe v wade",
	"brown":           "brown v board",
	"loving":          "loving v virginia",
	"marbury":         "marbury v madison",
	"chevron":         "chevron v nrdc",
	"griswold":        "griswold v connecticut",
	"gideon":          "gideon v wainwright",
	"mapp":            "mapp v ohio",
	"tinker":          "tinker v des moines",
	"lawrence":        "lawrence v texas",
	"bush":            "bush v gore",
	"bakke":           "regents v bakke",
	"nixon":           "united states v nixon",
	"korematsu":       "korematsu v united states",
	"schenck":         "schenck v united states",
	"plessy":          "plessy v ferguson",
	"lochner":         "lochner v new york",
	"palsgraf":        "palsgraf v lirr",
	"tarasoff":        "tarasoff v regents",
	"quinlan":         "in re quinlan",
	"osheroff":        "greenspan v osheroff",
}

var versusWord = regexp.MustCompile(`\b(vs|versus)\b`)

// normalizeCaseKey lowercases, strips punctuation, and folds vs/versus
// to "v" so query variants hit the same cache key.
func normalizeCaseKey(text string) string {
	text = strings.ToLower(text)
	text = strings.NewReplacer(".", "", ",", "", ":", "", ";", "").Replace(text)
	text = versusWord.ReplaceAllString(text, "v")
	return strings.Join(strings.Fields(text), " ")
}

// Landmark resolves queries against the landmark-case table: exact key,
// then alias, then fuzzy match. Never touches the network.
type Landmark struct{}

// NewLandmark creates the landmark-case provider.
func NewLandmark() *Landmark { return &Landmark{} }

func (l *Landmark) Name() string { return "landmark" }

// Search looks the query up in the landmark table.
func (l *Landmark) Search(ctx context.Context, query string) (*citation.Record, error) {
	key := normalizeCaseKey(query)
	if key == "" {
		return nil, provider.ErrNotFound
	}

	if c, ok := landmarkCases[key]; ok {
		return l.record(c, query), nil
	}

	for alias, full := range aliases {
		if strings.Contains(key, alias) {
			if c, ok := landmarkCases[full]; ok {
				return l.record(c, query), nil
			}
		}
	}

	// Fuzzy fallback; shorter queries get a looser cutoff.
	cutoff := 0.6
	if len(key) < 15 {
		cutoff = 0.5
	}
	if best, score := closestCase(key); score >= cutoff {
		return l.record(landmarkCases[best], query), nil
	}

	return nil, provider.ErrNotFound
}

func (l *Landmark) record(c landmarkCase, rawQuery string) *citation.Record {
	return &citation.Record{
		Type:           citation.Legal,
		CaseName:       c.CaseName,
		Citation:       c.Citation,
		Year:           c.Year,
		Court:          c.Court,
		Jurisdiction:   c.Jurisdiction,
		OriginProvider: l.Name(),
		RawQuery:       rawQuery,
	}
}

// closestCase returns the cache key with the highest similarity to key.
func closestCase(key string) (string, float64) {
	var best string
	bestScore := 0.0
	for candidate := range landmarkCases {
		if s := similarity(key, candidate); s > bestScore {
			bestScore = s
			best = candidate
		}
	}
	return best, bestScore
}

// similarity is a normalized edit-distance ratio in [0,1].
func similarity(a, b string) float64 {
	if a == b {
		return 1
	}
	longest := len(a)
	if len(b) > longest {
		longest = len(b)
	}
	if longest == 0 {
		return 0
	}
	return 1 - float64(editDistance(a, b))/float64(longest)
}

func editDistance(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			curr[j] = min3(curr[j-1]+1, prev[j]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(rb)]
}

func min3(a, b, c int) int {
	if b < a {
		a = b
	}
	if c < a {
		a = c
	}
	return a
}
