// Package advice produces the canned CEA guidance text for a user role and sector.
package advice

import (
	"fmt"
	"strings"
)

// User roles with dedicated housing guidance. Anything else is treated as a citizen.
const (
	RoleGovernment = "government"
	RoleBusiness   = "business"
)

const rule = "------------------------------------------------------------"

// Header is the banner that precedes advice in API responses.
func Header(userType, sector string) string {
	return fmt.Sprintf("[CEA Analysis] User: %s, Sector: %s\n%s\n\n",
		strings.ToUpper(userType), strings.ToUpper(sector), rule)
}

// For returns the guidance text for userType in sector. Only housing varies by role.
// Unrecognised sectors get the generic cross-sector text.
func For(userType, sector string) string {
	switch sector {
	case "housing":
		return housing(userType)
	case "education":
		return "CEA can match education spending to local needs: enrolment trends, teacher\n" +
			"shortages, and outcomes. Underused equipment can be shared between schools\n" +
			"and TAFEs through the circular marketplace instead of being thrown away."
	case "healthcare":
		return "By analysing de‑identified health data, CEA can show where aged care and\n" +
			"disability services are under pressure. Equipment that is still safe but no\n" +
			"longer needed in one hospital can be transferred to another through the\n" +
			"CEA marketplace, instead of being scrapped."
	case "infrastructure":
		return "CEA ranks infrastructure projects by social benefit per dollar: roads,\n" +
			"public transport, broadband. Materials from demolished projects can be\n" +
			"reused in new builds. This reduces waste and stretches the budget further."
	case "agriculture":
		return "CEA tracks inputs (water, fertiliser, energy) and outputs (crops, waste)\n" +
			"to suggest more efficient, climate-smart farming. Organic waste from\n" +
			"cities can be fed back to farms as compost via the marketplace."
	case "energy":
		return "CEA identifies high-potential regions for renewables and matches surplus\n" +
			"solar/wind power to local demand. It also manages end-of-life solar panels\n" +
			"and batteries so they are refurbished or recycled, not dumped."
	case "waste":
		return "This is the core of the circular marketplace: businesses and councils list\n" +
			"surplus or waste materials; others buy or exchange them. AI recommends the\n" +
			"best matches, reducing landfill and saving on raw material costs."
	}
	return Generic
}

// Generic is returned for sectors without dedicated guidance.
const Generic = "CEA uses your data to find where resources are wasted and suggests reuse,\n" +
	"repair, and sharing solutions across sectors."

func housing(userType string) string {
	switch userType {
	case RoleGovernment:
		return "Use CEA data to map where housing demand is highest and where there is\n" +
			"vacant or under-used buildings. Redirect new housing projects to these\n" +
			"areas and give incentives to developers who use recycled materials\n" +
			"through the CEA circular marketplace.\n\n" +
			"Graph idea: Plot average rent vs. vacancy rate by region."
	case RoleBusiness:
		return "Search the CEA marketplace for surplus or recycled construction materials\n" +
			"to cut your input costs. List your own surplus stock instead of sending it\n" +
			"to landfill – this creates a new revenue stream and supports the circular\n" +
			"economy."
	default:
		return "Use public CEA dashboards (future feature) to compare suburbs by rent,\n" +
			"services, and public transport. Support projects and policies that reuse\n" +
			"building materials to lower both prices and emissions."
	}
}
