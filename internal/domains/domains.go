// Package domains carries the curated domain and terminology tables used
// for source-type classification and local metadata extraction.
package domains

import "strings"

// newspaperNames maps news-site domains to publication names.
var newspaperNames = map[string]string{
	"nytimes.com":        "The New York Times",
	"washingtonpost.com": "The Washington Post",
	"wsj.com":            "The Wall Street Journal",
	"theguardian.com":    "The Guardian",
	"theatlantic.com":    "The Atlantic",
	"newyorker.com":      "The New Yorker",
	"slate.com":          "Slate",
	"politico.com":       "Politico",
	"bbc.com":            "BBC News",
	"reuters.com":        "Reuters",
	"apnews.com":         "Associated Press",
	"bloomberg.com":      "Bloomberg",
	"forbes.com":         "Forbes",
	"time.com":           "Time",
	"newsweek.com":       "Newsweek",
	"vox.com":            "Vox",
	"vice.com":           "Vice",
	"wired.com":          "Wired",
	"cnn.com":            "CNN",
	"foxnews.com":        "Fox News",
	"nbcnews.com":        "NBC News",
	"cbsnews.com":        "CBS News",
	"abcnews.go.com":     "ABC News",
	"latimes.com":        "Los Angeles Times",
	"chicagotribune.com": "Chicago Tribune",
	"bostonglobe.com":    "The Boston Globe",
}

// govAgencies maps .gov domains to agency names.
var govAgencies = map[string]string{
	"fda.gov":            "U.S. Food and Drug Administration",
	"cdc.gov":            "Centers for Disease Control and Prevention",
	"nih.gov":            "National Institutes of Health",
	"epa.gov":            "Environmental Protection Agency",
	"regulations.gov":    "U.S. Government",
	"doe.gov":            "U.S. Department of Energy",
	"energy.gov":         "U.S. Department of Energy",
	"whitehouse.gov":     "The White House",
	"congress.gov":       "U.S. Congress",
	"supremecourt.gov":   "Supreme Court of the United States",
	"justice.gov":        "U.S. Department of Justice",
	"state.gov":          "U.S. Department of State",
	"treasury.gov":       "U.S. Department of the Treasury",
	"defense.gov":        "U.S. Department of Defense",
	"ed.gov":             "U.S. Department of Education",
	"hhs.gov":            "U.S. Department of Health and Human Services",
	"dhs.gov":            "U.S. Department of Homeland Security",
	"usda.gov":           "U.S. Department of Agriculture",
	"commerce.gov":       "U.S. Department of Commerce",
	"labor.gov":          "U.S. Department of Labor",
	"transportation.gov": "U.S. Department of Transportation",
	"va.gov":             "U.S. Department of Veterans Affairs",
	"archives.gov":       "National Archives",
	"loc.gov":            "Library of Congress",
	"census.gov":         "U.S. Census Bureau",
	"bls.gov":            "Bureau of Labor Statistics",
	"sec.gov":            "Securities and Exchange Commission",
	"ftc.gov":            "Federal Trade Commission",
	"fcc.gov":            "Federal Communications Commission",
	"federalreserve.gov": "Federal Reserve",
	"cms.gov":            "Centers for Medicare & Medicaid Services",
	"ncbi.nlm.nih.gov":   "National Center for Biotechnology Information",
	"pubmed.gov":         "National Library of Medicine",
}

// legalDomains lists websites that publish case law; a URL on one of
// these classifies Legal even when it would otherwise look generic.
var legalDomains = []string{
	"courtlistener.com",
	"oyez.org",
	"case.law",
	"justia.com",
	"supremecourt.gov",
	"law.cornell.edu",
	"findlaw.com",
	"heinonline.org",
	"westlaw.com",
	"lexisnexis.com",
}

// publisherPlaces maps known publishers to their conventional
// place-of-publication, used by book formatters when a provider omits it.
var publisherPlaces = map[string]string{
	"Harvard University Press":         "Cambridge, MA",
	"MIT Press":                        "Cambridge, MA",
	"Yale University Press":            "New Haven",
	"Princeton University Press":       "Princeton",
	"Stanford University Press":        "Stanford",
	"University of California Press":   "Berkeley",
	"University of Chicago Press":      "Chicago",
	"Columbia University Press":        "New York",
	"Oxford University Press":          "Oxford",
	"Cambridge University Press":       "Cambridge",
	"Penguin":                          "New York",
	"Random House":                     "New York",
	"HarperCollins":                    "New York",
	"Simon & Schuster":                 "New York",
	"W. W. Norton":                     "New York",
	"Knopf":                            "New York",
	"Routledge":                        "London",
	"Bloomsbury":                       "London",
	"Sage Publications":                "Thousand Oaks",
	"Wiley":                            "Hoboken",
	"Springer":                         "New York",
	"Elsevier":                         "Amsterdam",
	"Taylor & Francis":                 "London",
	"Palgrave Macmillan":               "London",
	"Duke University Press":            "Durham",
	"Johns Hopkins University Press":   "Baltimore",
	"Cornell University Press":         "Ithaca",
	"University of Michigan Press":     "Ann Arbor",
	"University of Texas Press":        "Austin",
	"Indiana University Press":         "Bloomington",
	"Basic Books":                      "New York",
	"Free Press":                       "New York",
	"Vintage":                          "New York",
	"Anchor Books":                     "New York",
}

// MedicalTerms are clinical vocabulary items; two or more in one input
// suggest a medical citation.
var MedicalTerms = []string{
	"clinical", "patient", "treatment", "therapy", "diagnosis",
	"disease", "syndrome", "pharmaceutical", "drug", "medicine",
	"medical", "hospital", "physician", "pubmed", "ncbi",
	"randomized", "placebo", "trial", "efficacy", "dosage",
	"pathology", "prognosis", "etiology", "symptom", "chronic",
	"acute", "disorder", "condition", "intervention", "outcome",
}

// StrongMedicalPhrases are single phrases that alone indicate a clinical
// citation.
var StrongMedicalPhrases = []string{
	"randomized controlled trial",
	"double-blind",
	"placebo-controlled",
	"meta-analysis",
	"systematic review",
	"clinical trial",
	"clinical efficacy",
	"treatment-resistant",
}

func stripWWW(domain string) string {
	return strings.TrimPrefix(strings.ToLower(domain), "www.")
}

// NewspaperName returns the publication name for a news domain, or ""
// if the domain is not a known newspaper.
func NewspaperName(domain string) string {
	domain = stripWWW(domain)
	for key, name := range newspaperNames {
		if strings.Contains(domain, key) {
			return name
		}
	}
	return ""
}

// IsNewspaperDomain reports whether the domain belongs to the curated
// newspaper table.
func IsNewspaperDomain(domain string) bool {
	return NewspaperName(domain) != ""
}

// GovAgency returns the agency name for a .gov domain, defaulting to
// "U.S. Government" for unrecognized government hosts.
func GovAgency(domain string) string {
	domain = stripWWW(domain)
	for key, agency := range govAgencies {
		if strings.Contains(domain, key) {
			return agency
		}
	}
	return "U.S. Government"
}

// IsLegalDomain reports whether the text mentions a known case-law site.
func IsLegalDomain(text string) bool {
	lower := strings.ToLower(text)
	for _, d := range legalDomains {
		if strings.Contains(lower, d) {
			return true
		}
	}
	return false
}

// PublisherPlace returns the conventional place of publication for a
// known publisher, or "" when unknown. A non-empty current value is
// returned unchanged.
func PublisherPlace(publisher, current string) string {
	if current != "" {
		return current
	}
	if publisher == "" {
		return ""
	}
	lower := strings.ToLower(publisher)
	for name, place := range publisherPlaces {
		if strings.Contains(lower, strings.ToLower(name)) {
			return place
		}
	}
	return ""
}
