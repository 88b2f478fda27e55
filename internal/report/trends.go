package report

import (
	"fmt"
	"strings"

	"gonum.org/v1/plot/vg"

	"regimpact/internal/chart"
	"regimpact/internal/metrics"
	"regimpact/internal/pipeline"
	"regimpact/internal/series"
)

// loader produces the series one chart draws.
type loader func(e *Env) ([]series.Series, error)

func oecdLoader(in Input) loader {
	return func(e *Env) ([]series.Series, error) {
		return e.oecd(in)
	}
}

// indexed chains each loaded growth series into a cumulative index.
func indexed(load loader) loader {
	return func(e *Env) ([]series.Series, error) {
		all, err := load(e)
		if err != nil {
			return nil, err
		}
		return pipeline.Map(all, metrics.CumulativeIndex), nil
	}
}

// yearChart is a line chart over calendar years with the regulation overlay.
func (e *Env) yearChart(title, ylabel string, lines []chart.Line) chart.LineChart {
	tl := e.Timeline
	return chart.LineChart{
		Title:    title,
		XLabel:   "Year",
		YLabel:   ylabel,
		Lines:    lines,
		Timeline: &tl,
		Since:    e.MinYear,
	}
}

func (e *Env) indexLabel(prefix string) string {
	return fmt.Sprintf("%s (%d = 100)", prefix, e.MinYear)
}

// countryLines draws one line per country series in the country styles.
func countryLines(all []series.Series, th chart.Theme) []chart.Line {
	lines := make([]chart.Line, 0, len(all))
	for _, s := range all {
		lines = append(lines, chart.Line{Label: s.Entity, XYs: chart.SeriesXYs(s), Style: th.Country(s.Entity)})
	}
	return lines
}

// countryJob is the common shape: one input, one line per country.
func countryJob(id, name, title, ylabel string, in Input, load loader, zero bool) Job {
	return Job{
		ID:     id,
		Name:   name,
		Title:  title,
		Inputs: []Input{in},
		Render: func(e *Env, th chart.Theme) (chart.Drawer, error) {
			all, err := load(e)
			if err != nil {
				return nil, err
			}
			lc := e.yearChart(title, ylabel, countryLines(all, th))
			lc.ZeroLine = zero
			return plotted(lc, th)
		},
	}
}

// indexJob draws the cumulative index of an OECD growth table.
func indexJob(id, name, title, ylabelPrefix string, in Input) Job {
	load := indexed(oecdLoader(in))
	return Job{
		ID:     id,
		Name:   name,
		Title:  title,
		Inputs: []Input{in},
		Render: func(e *Env, th chart.Theme) (chart.Drawer, error) {
			all, err := load(e)
			if err != nil {
				return nil, err
			}
			return plotted(e.yearChart(title, e.indexLabel(ylabelPrefix), countryLines(all, th)), th)
		},
	}
}

func trendJobs() []Job {
	jobs := []Job{
		countryJob("01", "broadband_pricing_timeline",
			"Multi-Country Broadband Pricing Timeline (100-200 Mbps) with Regulation Overlays",
			"Price (PPP in EUR)", Prices, (*Env).prices, false),
		countryJob("02", "internet_usage_trajectory",
			"Internet Usage Adoption Trajectory by Country with Regulatory Milestones",
			"Internet Users (% of Population)", InternetUsage, (*Env).internetUsage, false),
		countryJob("03", "broadband_speed_evolution",
			"Broadband Speed Coverage Evolution (>1 Gbps) by Country",
			"Coverage (% of Households with >1 Gbps)", Speed, (*Env).gigabitCoverage, false),
		countryJob("04", "individual_cloud_adoption",
			"Individual Cloud Service Adoption Rates by Country",
			"Adoption Rate (% of Individuals)", IndividualCloud, (*Env).individualCloud, false),
		countryJob("05", "gerd_growth_rates",
			"Total R&D Expenditure Growth Rates (GERD) with Regulatory Milestones",
			"GERD Growth Rate (%)", GERD, oecdLoader(GERD), true),
		countryJob("06", "bred_trends",
			"Business R&D Expenditure (BRED) Trends with Regulatory Boundaries",
			"BRED Growth Rate (%)", BRED, oecdLoader(BRED), true),
		countryJob("07", "goverd_response",
			"Government R&D Spending (GOVERD) Response to Regulations",
			"GOVERD Growth Rate (%)", GOVERD, oecdLoader(GOVERD), true),
		countryJob("08", "hred_acceleration",
			"Higher Education R&D Expenditure (HRED) Acceleration Post-Regulation",
			"HRED Growth Rate (%)", HRED, oecdLoader(HRED), true),
	}

	for i, country := range countries {
		jobs = append(jobs, comparativeRDJob(fmt.Sprintf("%02d", 9+i), country))
	}
	for i, code := range countryCodes {
		jobs = append(jobs, enterpriseSizeJob(fmt.Sprintf("%02d", 12+i), code))
	}

	jobs = append(jobs, countryJob("15", "broadband_traffic_evolution",
		"Broadband Traffic Volume Evolution with Regulatory Overlays",
		"Traffic Volume (Exabytes)", Traffic, (*Env).traffic, false))

	for i, code := range []string{"DE", "IE"} {
		country := countryNames[code]
		jobs = append(jobs, countryJob(
			fmt.Sprintf("16%c", 'a'+i), "broadband_prices_"+strings.ToLower(country),
			"Broadband Prices (100-200 Mbps) - "+country, "Price (PPP EUR)", Prices,
			func(e *Env) ([]series.Series, error) {
				return e.eurostat(Prices, priceFilter(), code)
			}, false))
	}

	jobs = append(jobs,
		countryJob("17", "three_country_internet_usage",
			"Three-Country Comparison: Internet Usage Growth Trajectory",
			"Internet Users (% of Population)", InternetUsage, (*Env).internetUsage, false),
		cloudComparisonJob(),
		indexJob("19", "rd_acceleration_index",
			"R&D Investment Acceleration Index (GERD) by Country", "Investment Index", GERD),
		indexJob("19a", "bred_acceleration_index",
			"Business R&D Investment Acceleration Index (BRED) by Country", "Investment Index", BRED),
		indexJob("19b", "goverd_acceleration_index",
			"Government R&D Investment Acceleration Index (GOVERD) by Country", "Investment Index", GOVERD),
		indexJob("19c", "hred_acceleration_index",
			"Higher Education R&D Investment Acceleration Index (HRED) by Country", "Investment Index", HRED),
		countryJob("21", "digital_maturity_index",
			"Digital Infrastructure Maturity (Internet Penetration) by Country",
			"Internet Penetration (%)", InternetUsage, (*Env).internetUsage, false),
		indexJob("23", "cumulative_investment_index",
			"Cumulative R&D Investment Change Index", "Cumulative Investment Index", GERD),
		enterpriseRegulationJob(),
	)
	return jobs
}

// comparativeRDJob draws the four R&D sources for one country.
func comparativeRDJob(id, country string) Job {
	title := "Comparative R&D Investment by Source - " + country
	return Job{
		ID:     id,
		Name:   "comparative_rd_" + strings.ToLower(country),
		Title:  title,
		Inputs: []Input{GERD, BRED, GOVERD, HRED},
		Render: func(e *Env, th chart.Theme) (chart.Drawer, error) {
			var lines []chart.Line
			for i, src := range rdSources {
				all, err := e.oecd(src.Input)
				if err != nil {
					return nil, err
				}
				s, ok := series.Find(all, country)
				if !ok {
					continue
				}
				lines = append(lines, chart.Line{Label: src.Name, XYs: chart.SeriesXYs(s), Style: th.Cycle(i)})
			}
			lc := e.yearChart(title, "Growth Rate (%)", lines)
			lc.ZeroLine = true
			return plotted(lc, th)
		},
	}
}

// enterpriseSizeJob draws cloud adoption per enterprise size in one country.
func enterpriseSizeJob(id, code string) Job {
	country := countryNames[code]
	title := "Enterprise Cloud Computing Adoption by Company Size - " + country
	return Job{
		ID:     id,
		Name:   "enterprise_cloud_" + strings.ToLower(country),
		Title:  title,
		Inputs: []Input{EnterpriseCloud},
		Render: func(e *Env, th chart.Theme) (chart.Drawer, error) {
			all, err := e.enterpriseSizes(code)
			if err != nil {
				return nil, err
			}
			var lines []chart.Line
			for _, s := range all {
				label, known := sizeLabels[s.Entity]
				style, styled := th.Size(s.Entity)
				if !known || !styled {
					continue
				}
				lines = append(lines, chart.Line{Label: label, XYs: chart.SeriesXYs(s), Style: style})
			}
			return plotted(e.yearChart(title, "Cloud Adoption (% of Enterprises)", lines), th)
		},
	}
}

// secondary restyles a country style for the enterprise overlay lines.
func secondary(s chart.Style) chart.Style {
	s.Width = vg.Points(1.5)
	s.Dashes = chart.Dotted
	s.Radius = vg.Points(2.5)
	return s
}

// cloudComparisonJob overlays individual and SME enterprise cloud adoption.
func cloudComparisonJob() Job {
	title := "Three-Country Comparison: Cloud Service Adoption Rates"
	return Job{
		ID:     "18",
		Name:   "three_country_cloud_adoption",
		Title:  title,
		Inputs: []Input{IndividualCloud, EnterpriseCloud},
		Render: func(e *Env, th chart.Theme) (chart.Drawer, error) {
			individual, err := e.individualCloud()
			if err != nil {
				return nil, err
			}
			enterprise, err := e.enterpriseCloud(smeSize)
			if err != nil {
				return nil, err
			}

			var lines []chart.Line
			for _, s := range individual {
				lines = append(lines, chart.Line{Label: s.Entity + " (Individual)", XYs: chart.SeriesXYs(s), Style: th.Country(s.Entity)})
			}
			for _, s := range enterprise {
				lines = append(lines, chart.Line{
					Label: s.Entity + " (Enterprise 10-249)",
					XYs:   chart.SeriesXYs(s),
					Style: secondary(th.Country(s.Entity)),
				})
			}
			return plotted(e.yearChart(title, "Cloud Adoption Rate (%)", lines), th)
		},
	}
}

// enterpriseRegulationJob draws SME and large enterprise adoption for every
// country on one chart.
func enterpriseRegulationJob() Job {
	title := "Enterprise Cloud Adoption vs Regulatory Periods"
	return Job{
		ID:     "25",
		Name:   "enterprise_cloud_vs_regulations",
		Title:  title,
		Inputs: []Input{EnterpriseCloud},
		Render: func(e *Env, th chart.Theme) (chart.Drawer, error) {
			var lines []chart.Line
			for _, code := range countryCodes {
				country := countryNames[code]
				all, err := e.enterpriseSizes(code, smeSize, largeSize)
				if err != nil {
					return nil, err
				}
				for _, s := range all {
					style, label := th.Country(country), "10-249"
					if s.Entity == largeSize {
						style, label = secondary(style), "250+"
					}
					lines = append(lines, chart.Line{
						Label: fmt.Sprintf("%s (%s employees)", country, label),
						XYs:   chart.SeriesXYs(s),
						Style: style,
					})
				}
			}
			return plotted(e.yearChart(title, "Cloud Adoption (% of Enterprises)", lines), th)
		},
	}
}
