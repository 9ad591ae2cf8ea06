package registration

import "slices"

// Choice lists offered by the registration form.
var (
	GENDERS = []string{"Male", "Female", "Prefer not to say"}

	ORG_TYPES = []string{
		"Startup",
		"MSME",
		"Corporate / MNC",
		"Investor / VC / Angel",
		"Bank / Financial Institution",
		"Academia / Research",
		"Government / PSU",
		"Incubator / Accelerator",
		"Student",
		OTHER,
	}

	DOMAINS = []string{
		"AI / ML",
		"Semiconductor",
		"Robotics / Electronics",
		"MedTech / HealthTech",
		"Clean Energy / ClimateTech",
		"SpaceTech / DefenceTech",
		"AgriTech",
		"FinTech",
		"Manufacturing / Industry 4.0",
		"Cybersecurity",
		"Biotech / Life Sciences",
		"Smart Mobility",
		"Quantum",
		"Bio informatics",
		"Legal / IP",
		OTHER,
	}

	ECOSYSTEM_ROLES = []string{
		"Founder / Co-Founder",
		"Innovator",
		"Investor",
		"Mentor",
		"Banker / Financial Facilitator",
		"Industry Leader",
		"Academia / Researcher",
		"Policy / Government",
		"Student / Aspiring Entrepreneur",
	}

	PURPOSES = []string{
		"Investment / Funding Opportunities",
		"Mentorship & Expert Guidance",
		"Bank & Financial Support",
		"Industry Partnerships",
		"Policy & Government Connect",
		"Market Access / Pilots",
		"Networking & Ecosystem Exposure",
	}

	INTERESTS = []Interest{INTEREST_YES, INTEREST_NO, INTEREST_MAYBE}
)

const (
	OTHER = "Other"

	MAX_DOMAINS = 2
)

func isEcosystemRole(role string) bool {
	return slices.Contains(ECOSYSTEM_ROLES, role)
}

func isInterest(i Interest) bool {
	return slices.Contains(INTERESTS, i)
}
