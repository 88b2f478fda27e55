package report

import (
	"math"

	"gonum.org/v1/plot/vg"

	"regimpact/internal/chart"
)

// Published survey figures. The values are fixed; these charts read no input.

const shareOfRespondents = "Share of respondents (%)"

// surveyJob renders a fixed bar chart on a canvas of w by h inches.
func surveyJob(id, name string, w, h float64, bc chart.BarChart) Job {
	return Job{
		ID:     id,
		Name:   name,
		Title:  bc.Title,
		Width:  vg.Length(w) * vg.Inch,
		Height: vg.Length(h) * vg.Inch,
		Render: func(_ *Env, th chart.Theme) (chart.Drawer, error) {
			return plotted(bc, th)
		},
	}
}

// split keeps the values whose index satisfies keep and blanks the rest, so
// a single category can be drawn in a second group with its own fill.
func split(values []float64, keep func(i int) bool) []float64 {
	out := make([]float64, len(values))
	for i, v := range values {
		out[i] = math.NaN()
		if keep(i) {
			out[i] = v
		}
	}
	return out
}

var firmSizes = []string{
	"Micro\n(<10 employees)",
	"Very Small\n(10-19 employees)",
	"Small\n(20-49 employees)",
	"Medium\n(50-249 employees)",
	"Large\n(≥250 employees)",
}

func regulationImpactSurvey() Job {
	return surveyJob("29", "regulation_impact_survey", 16, 9, chart.BarChart{
		Title:      "Impact of EU Regulations on Business: Survey Results",
		ValueLabel: shareOfRespondents,
		Categories: []string{
			"Payment Services Directive 2 (PSD2)",
			"EU Cybersecurity Act",
			"Visa policy",
			"Digital Markets Act (DMA)",
			"Digital Services Act (DSA)",
			"EU AI Act (AIA)",
			"Anti-trust reviews",
			"Tax reforms",
			"Data privacy laws (e.g. GDPR)",
		},
		Groups: []chart.Bars{
			{Label: "Negative", Values: []float64{24, 30, 44, 41, 40, 53, 40, 51, 60}, Fill: chart.Gray(0x33)},
			{Label: "No significant impact", Values: []float64{35, 37, 32, 38, 39, 27, 41, 33, 25}, Fill: chart.Gray(0x66)},
			{Label: "Positive", Values: []float64{40, 33, 23, 22, 21, 20, 19, 16, 15}, Fill: chart.Gray(0xCC)},
		},
		Horizontal: true,
		Stacked:    true,
		Labels:     chart.LabelInside,
		LabelMin:   5,
		ValueMax:   105,
	})
}

func digitalRightsSurvey() Job {
	return surveyJob("30", "digital_rights_survey", 18, 12, chart.BarChart{
		Title:      "Digital Rights Application in Europe: Survey Results (March 2023)",
		ValueLabel: shareOfRespondents,
		Categories: []string{
			"Freedom of assembly and association\nin digital environment",
			"Freedom of expression and information\nonline (platforms, social networks, search)",
			"Basic and advanced digital education,\ntraining and skills",
			"Access to safe and privacy-friendly\ndigital technologies",
			"Easy online access to all key\npublic services in the EU",
			"Affordable high-speed internet\nconnection for everyone in the EU",
			"Access to trustworthy, diverse and\nmultilingual digital environment",
			"Access to information on environmental\nimpact of digital technologies",
			"Fair and healthy working conditions\nin digital environment (work-life balance)",
			"Privacy online (respect for confidentiality\nof communications and information)",
			"Control of one's own data (how it is used\nonline and with whom it is shared)",
			"Effective freedom of choice online\n(including with AI, chatbots, assistants)",
			"Digital products and services that minimise\nenvironmental and social damage",
		},
		Groups: []chart.Bars{
			{Label: "Very well", Values: []float64{15, 13, 13, 13, 13, 14, 12, 11, 12, 12, 13, 11, 11}, Fill: chart.Gray(0x00)},
			{Label: "Fairly well", Values: []float64{45, 47, 43, 42, 41, 39, 40, 40, 39, 39, 36, 38, 37}, Fill: chart.Gray(0x44)},
			{Label: "Not very well", Values: []float64{18, 21, 24, 25, 25, 26, 25, 26, 26, 27, 28, 23, 26}, Fill: chart.Gray(0x88)},
			{Label: "Not well at all", Values: []float64{5, 6, 6, 7, 7, 9, 7, 7, 7, 9, 11, 7, 8}, Fill: chart.Gray(0xCC)},
			{Label: "Don't know", Values: []float64{17, 13, 14, 13, 14, 12, 16, 16, 16, 13, 12, 21, 18}, Fill: chart.Gray(0xE8)},
		},
		Horizontal: true,
		Stacked:    true,
		Labels:     chart.LabelInside,
		LabelMin:   5,
		ValueMax:   105,
	})
}

func costIncreaseByFirmSize() Job {
	costs := []float64{12495, 4688, 6724, 12114, 33410, 70999}
	isTotal := func(i int) bool { return i == len(costs)-1 }
	return surveyJob("31", "dma_dsa_cost_increases", 16, 9, chart.BarChart{
		Title:         "Potential Cost Increases from DMA and DSA on EU Businesses\nUsing U.S. Digital Service Providers (5% Technology Cost Increase)",
		CategoryLabel: "Firm Size",
		ValueLabel:    "Cost Increase (millions of euros)",
		Categories: []string{
			"0-9\nemployees", "10-19\nemployees", "20-49\nemployees",
			"50-249\nemployees", "≥250\nemployees", "Total",
		},
		Groups: []chart.Bars{
			{Label: "Increase", Values: split(costs, func(i int) bool { return !isTotal(i) }), Fill: chart.Gray(0x33)},
			{Label: "Total", Values: split(costs, isTotal), Fill: chart.Gray(0xCC)},
		},
		Stacked:   true,
		Labels:    chart.LabelInside,
		LabelText: func(v float64) string { return "€ " + formatThousands(v) },
		ValueMax:  82000,
	})
}

func companyActions() Job {
	return surveyJob("32", "company_actions_cost_response", 16, 10, chart.BarChart{
		Title:      "Likely Actions Taken by EU Companies in Response to\n5-10% Increase in U.S. Digital Service Provider Costs",
		ValueLabel: "Percentage of Companies (%)",
		Categories: []string{
			"Have to change to other\npoorer quality technology",
			"Be less competitive in\nexport markets",
			"Pass the costs to customers\nand raise prices",
			"Have to sell more\nproducts/services",
			"Have to have less\ntechnology",
			"Probably have to change to\nChinese technology",
			"Not be able to raise\nour salaries",
			"Hire fewer people",
			"Probably sell less\nespecially online",
			"Slow down our digital\ntransformation plans",
			"Get rid of some\nemployees",
			"No impact",
			"Invest less in R&D",
		},
		Groups: []chart.Bars{
			{Values: []float64{29, 28, 27, 24, 23, 18, 17, 17, 14, 12, 10, 10, 10}, Fill: chart.Gray(0x33)},
		},
		Horizontal: true,
		TopDown:    true,
		Labels:     chart.LabelOutside,
		ValueMax:   32,
	})
}

func techCostVsChallenges() Job {
	return surveyJob("33", "tech_cost_vs_challenges", 18, 10, chart.BarChart{
		Title:      "European Firms' Response: \"How would a 5% increase in tech costs rate\nvis-à-vis other challenges for your company this year?\"",
		ValueLabel: shareOfRespondents,
		Categories: []string{
			"Slowing demand",
			"No issues,\nbusiness is good",
			"Cost of employees",
			"Inflation - higher supply\nand transport costs",
			"Supply chain backlog",
			"Managing new\nregulations",
			"Finding talent",
		},
		Groups: []chart.Bars{
			{Label: "5% tech cost increase would be much worse than this", Values: []float64{18, 15, 15, 14, 14, 13, 11}, Fill: chart.Gray(0x00)},
			{Label: "5% tech cost increase would be worse than this", Values: []float64{30, 32, 32, 28, 28, 27, 26}, Fill: chart.Gray(0x44)},
			{Label: "5% tech cost increase would be less bad than this", Values: []float64{16, 19, 18, 21, 20, 22, 24}, Fill: chart.Gray(0x88)},
			{Label: "5% tech cost increase would be pretty irrelevant compared to this", Values: []float64{14, 15, 15, 17, 18, 18, 19}, Fill: chart.Gray(0xCC)},
		},
		Horizontal: true,
		Stacked:    true,
		Labels:     chart.LabelInside,
		LabelMin:   8,
		ValueMax:   105,
	})
}

func costSavingsByFirmSize() Job {
	return surveyJob("34", "cost_savings_by_firm_size", 18, 10, chart.BarChart{
		Title:      "Percent of European Firms Stating Cost-Savings Benefits from\nIntegrated Digital Services, by Firm Size",
		ValueLabel: shareOfRespondents,
		Categories: firmSizes,
		Groups: []chart.Bars{
			{Label: "Extremely important", Values: []float64{28, 33, 28, 38, 35}, Fill: chart.Gray(0x00)},
			{Label: "Important", Values: []float64{46, 43, 45, 38, 35}, Fill: chart.Gray(0x44)},
			{Label: "Somewhat important", Values: []float64{11, 11, 14, 12, 12}, Fill: chart.Gray(0x88)},
			{Label: "Unimportant", Values: []float64{4, 3, 4, 3, 3}, Fill: chart.Gray(0xCC)},
			{Label: "Inconvenient, would prefer to not be tied to a single IT provider", Values: []float64{3, 2, 2, 2, 5}, Fill: chart.Gray(0xDD)},
		},
		Horizontal: true,
		Stacked:    true,
		Labels:     chart.LabelInside,
		LabelMin:   5,
		ValueMax:   105,
	})
}

func technologyUse() Job {
	return surveyJob("35", "technology_use_european_firms", 16, 10, chart.BarChart{
		Title:      "Technology Use by European Firms\n(Enterprises with at least 10 employees and self-employed people)",
		ValueLabel: "Percentage of Firms (%)",
		Categories: []string{
			"Had internet access",
			"Used a fixed broadband\ninternet connection",
			"Had a website",
			"Connected to internet via\nmobile broadband connection",
			"Used social media",
			"Purchased online",
			"Used cloud computing",
			"Used enterprise resource\nplanning (ERP) software",
			"Sent or received e-invoices",
			"Used customer relationship\nmanagement (CRM) software",
			"Used internet of things (IoT)",
			"Paid to advertise on the internet",
			"Had e-commerce sales",
			"Used radio frequency\nidentification (RFID) technologies",
			"Used AI technologies",
		},
		Groups: []chart.Bars{
			{Values: []float64{99, 96, 85, 74, 63, 53, 45, 42, 40, 37, 31, 28, 25, 12, 8}, Fill: chart.Gray(0x33)},
		},
		Horizontal: true,
		TopDown:    true,
		Labels:     chart.LabelOutside,
		ValueMax:   105,
	})
}

func priorityServices() Job {
	return surveyJob("36", "priority_digital_services", 18, 10, chart.BarChart{
		Title:      "Priority Digital Services for European Firms in the Next Five Years, by Firm Size",
		ValueLabel: shareOfRespondents,
		Categories: firmSizes,
		Groups: []chart.Bars{
			{Label: "Software as service", Values: []float64{18, 30, 26, 27, 30}, Fill: chart.Gray(0x00)},
			{Label: "Artificial intelligence, machine learning", Values: []float64{22, 27, 28, 20, 25}, Fill: chart.Gray(0xCC)},
			{Label: "Cloud computing in general", Values: []float64{19, 20, 30, 30, 23}, Fill: chart.Gray(0x88)},
			{Label: "Internet of things", Values: []float64{20, 12, 10, 13, 13}, Fill: chart.Gray(0xDD)},
			{Label: "Blockchain", Values: []float64{8, 5, 5, 7, 7}, Fill: chart.Gray(0xEE)},
			{Label: "Edge computing", Values: []float64{5, 3, 2, 2, 1}, Fill: chart.Gray(0xAA)},
			{Label: "Other", Values: []float64{8, 3, 1, 1, 1}, Fill: chart.Gray(0x99)},
		},
		Horizontal: true,
		Stacked:    true,
		Labels:     chart.LabelInside,
		LabelMin:   5,
		ValueMax:   105,
	})
}

func usServicesByFirmSize() Job {
	return surveyJob("37", "us_digital_services_by_firm_size", 18, 12, chart.BarChart{
		Title:      "Percent of European Firms Using U.S. Digital Services, by Firm Size",
		ValueLabel: "Percentage of Firms (%)",
		Categories: []string{
			"Other U.S. technology", "Other", "Siemens Global Business Services", "SAP",
			"Oracle", "Salesforce", "Slack", "Skype for Business", "Amazon Cloud - AWS",
			"None of the above", "Google Meet", "Microsoft 365", "OneDrive/Microsoft",
			"Microsoft Cloud", "Google Workspace", "TikTok", "Microsoft Teams", "LinkedIn",
			"Microsoft Windows", "Zoom", "Google Cloud", "YouTube", "Facebook", "Instagram",
		},
		Groups: []chart.Bars{
			{Label: "Micro (<10 employees)", Values: []float64{2, 2, 2, 2, 2, 2, 3, 4, 7, 10, 13, 15, 15, 16, 17, 18, 22, 26, 30, 32, 37, 38, 50, 55}, Fill: chart.Gray(0x00)},
			{Label: "Very small (10-19 employees)", Values: []float64{2, 2, 2, 3, 5, 7, 3, 8, 10, 8, 15, 20, 15, 18, 18, 10, 28, 20, 35, 30, 30, 35, 48, 52}, Fill: chart.Gray(0x33)},
			{Label: "Small (20-49 employees)", Values: []float64{2, 2, 2, 5, 8, 10, 3, 8, 12, 8, 18, 25, 18, 20, 25, 8, 35, 18, 40, 28, 32, 38, 45, 50}, Fill: chart.Gray(0x66)},
			{Label: "Medium (50-249 employees)", Values: []float64{2, 2, 3, 8, 12, 12, 4, 10, 15, 10, 20, 30, 22, 25, 30, 10, 42, 18, 42, 30, 48, 38, 48, 52}, Fill: chart.Gray(0x99)},
			{Label: "Large (≥ 250 employees)", Values: []float64{3, 2, 3, 25, 15, 15, 5, 25, 25, 8, 25, 40, 30, 35, 20, 12, 45, 32, 42, 45, 35, 40, 48, 52}, Fill: chart.Gray(0xCC)},
		},
		Horizontal: true,
		TopDown:    true,
		ValueMax:   62,
	})
}

func benefitsByFirmAge() Job {
	return surveyJob("38", "benefits_by_firm_age", 18, 10, chart.BarChart{
		Title:      "Percent of European Firms Classifying Benefits from U.S. Digital Services as\n\"Extremely Great\" Advantage for Their Business, by Firm Age",
		ValueLabel: "Percentage of Firms Classifying as \"Extremely Great\" Advantage (%)",
		Categories: []string{
			"Security/cybersecurity",
			"Performance",
			"Price",
			"Ability to manage\ndata privacy",
			"Integration with work\nand solutions",
			"Efficiencies to reduce\ncarbon footprint",
			"Ability to innovate faster",
			"Ease of use",
		},
		Groups: []chart.Bars{
			{Label: "<1 year", Values: []float64{36, 36, 32, 30, 26, 22, 22, 18}, Fill: chart.Gray(0x00)},
			{Label: "1-3 years", Values: []float64{34, 36, 38, 34, 34, 32, 28, 38}, Fill: chart.Gray(0x44)},
			{Label: "3-5 years", Values: []float64{32, 34, 32, 34, 32, 34, 32, 36}, Fill: chart.Gray(0x88)},
			{Label: "5-10 years", Values: []float64{32, 34, 30, 30, 32, 28, 32, 32}, Fill: chart.Gray(0xAA)},
			{Label: ">10 years", Values: []float64{34, 36, 32, 34, 32, 30, 32, 34}, Fill: chart.Gray(0xCC)},
		},
		Horizontal: true,
		TopDown:    true,
		ValueMax:   42,
	})
}

func costBySector() Job {
	costs := []float64{96561, 275, 284, 331, 955, 6187, 6477, 7381, 3811, 17337, 27742, 16024, 6200, 2421, 1138}
	isTotal := func(i int) bool { return i == 0 }
	return surveyJob("39", "eu_regulations_cost_by_sector", 16, 12, chart.BarChart{
		Title:      "Potential Cost Increases Implied by EU Regulations on U.S. Businesses\nThat Use U.S. Digital Service Providers, by Sector",
		ValueLabel: "Cost Increase (millions of dollars)",
		Categories: []string{
			"Total",
			"Other services, except government",
			"Arts, entertainment, recreation,\naccommodation, and food services",
			"Educational services, healthcare,\nand social assistance",
			"Professional and business services",
			"Finance, insurance, real estate,\nrental, and leasing",
			"Information",
			"Transportation and warehousing",
			"Retail trade",
			"Wholesale trade",
			"Manufacturing",
			"Construction",
			"Utilities",
			"Mining",
			"Agriculture, forestry, fishing,\nand hunting",
		},
		Groups: []chart.Bars{
			{Label: "Increase", Values: split(costs, func(i int) bool { return !isTotal(i) }), Fill: chart.Gray(0x33)},
			{Label: "Total", Values: split(costs, isTotal), Fill: chart.Gray(0xCC)},
		},
		Horizontal: true,
		Stacked:    true,
		TopDown:    true,
		Labels:     chart.LabelOutside,
		LabelText:  func(v float64) string { return "$" + formatThousands(v) },
		ValueMax:   110000,
	})
}

func surveyJobs() []Job {
	return []Job{
		regulationImpactSurvey(),
		digitalRightsSurvey(),
		costIncreaseByFirmSize(),
		companyActions(),
		techCostVsChallenges(),
		costSavingsByFirmSize(),
		technologyUse(),
		priorityServices(),
		usServicesByFirmSize(),
		benefitsByFirmAge(),
		costBySector(),
	}
}
