package extraction

import (
	"fmt"
	"hash/fnv"
	"path/filepath"
	"strings"

	"github.com/jurisdocs/caseflow/internal/models"
)

// The generators below stand in for a real extraction backend. Output is
// derived from the file name so repeated runs over the same batch produce
// the same metadata.

var courts = []string{
	"Supreme Court of India",
	"High Court of Delhi",
	"High Court of Bombay",
	"High Court of Madras",
	"High Court of Karnataka",
}

var caseTypes = []string{"Civil Appeal", "Criminal Appeal", "Writ Petition", "Special Leave Petition"}

var judgePool = []string{
	"Justice R. Venkatesan",
	"Justice A. Sharma",
	"Justice P. Nair",
	"Justice S. Banerjee",
	"Justice M. Qureshi",
	"Justice K. Deshpande",
}

var verdicts = []string{"Allowed", "Dismissed", "Partly Allowed", "Remanded"}

var actPool = []string{
	"Indian Penal Code, 1860 - Section 302",
	"Code of Civil Procedure, 1908 - Order XLI",
	"Constitution of India - Article 226",
	"Indian Contract Act, 1872 - Section 73",
	"Code of Criminal Procedure, 1973 - Section 482",
}

func seedFor(parts ...string) uint32 {
	h := fnv.New32a()
	for _, p := range parts {
		h.Write([]byte(p))
	}
	return h.Sum32()
}

func pick(pool []string, seed uint32, offset int) string {
	return pool[(int(seed)+offset)%len(pool)]
}

// synthesizeBasic produces the structured details a basic extraction
// pass would return for one judgment.
func synthesizeBasic(batchName, fileName string, ordinal int) *models.BasicMetadata {
	seed := seedFor(batchName, fileName)
	stem := strings.TrimSuffix(filepath.Base(fileName), filepath.Ext(fileName))

	year := 2015 + int(seed)%10
	caseNo := fmt.Sprintf("%s No. %d of %d", pick(caseTypes, seed, 0), 100+ordinal, year)
	petitioner := fmt.Sprintf("%s Petitioner", strings.ReplaceAll(stem, "_", " "))
	respondent := "State & Ors."

	return &models.BasicMetadata{
		CaseNumber: caseNo,
		CaseName:   fmt.Sprintf("%s v. %s", petitioner, respondent),
		Court:      pick(courts, seed, ordinal),
		CaseType:   pick(caseTypes, seed, 0),
		Date:       fmt.Sprintf("%d-%02d-%02d", year, 1+int(seed)%12, 1+int(seed)%28),
		Judges: []string{
			pick(judgePool, seed, ordinal),
			pick(judgePool, seed, ordinal+3),
		},
		Citations: []string{
			fmt.Sprintf("(%d) %d SCC %d", year, 1+int(seed)%12, 200+ordinal),
		},
		Petitioner: petitioner,
		Respondent: respondent,
		Advocates: []string{
			fmt.Sprintf("Adv. %s", pick(judgePool, seed, ordinal+1)[8:]),
		},
		ActsSections: []string{
			pick(actPool, seed, ordinal),
		},
		CasesReferred: []string{
			fmt.Sprintf("Ref. Case (%d) %d SCC %d", year-2, 1+int(seed)%10, 50+ordinal),
		},
		Verdict: pick(verdicts, seed, ordinal),
	}
}

// synthesizeSummary produces the facts and summary a second extraction
// pass would return, reusing the basic details where present.
func synthesizeSummary(basic *models.BasicMetadata, fileName string) *models.SummaryMetadata {
	caseName := filepath.Base(fileName)
	citations := []string{}
	if basic != nil {
		caseName = basic.CaseName
		citations = append(citations, basic.Citations...)
	}

	return &models.SummaryMetadata{
		Facts: fmt.Sprintf(
			"The matter of %s arises from proceedings before the lower court. "+
				"The appellant challenges the findings on both factual and legal grounds.",
			caseName),
		Summary: fmt.Sprintf(
			"The court examined the record in %s, heard counsel for both sides, "+
				"and delivered its judgment on the questions of law raised.",
			caseName),
		Citations: citations,
	}
}
