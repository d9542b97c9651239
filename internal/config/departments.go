package config

import "timetable-go/internal/parser"

// hourly slots used by pages that number their periods
var numberedPeriods = map[string]string{
	"1": "08:30", "2": "09:30", "3": "10:30", "4": "11:30",
	"5": "12:30", "6": "13:30", "7": "14:30", "8": "15:30",
}

var longFormPeriods = map[string]string{
	"8.30 AM (1ST)":  "08:30",
	"9.30 AM (2ND)":  "09:30",
	"10.30 AM (3RD)": "10:30",
	"11.30 AM (4TH)": "11:30",
	"12.30 PM (5TH)": "12:30",
	"1.30 PM (6TH)":  "13:30",
	"2.30 PM (7TH)":  "14:30",
	"3.30 PM (8TH)":  "15:30",
}

// Builtin returns the department table used when no config file is given.
func Builtin() []Department {
	return []Department{
		{
			Name:           "cse",
			URL:            "https://cse.gndec.ac.in/sites/default/files/TT%20Jan-June%202026_groups_days_horizontal%20%281%29.html",
			Strategy:       parser.StrategyHeader,
			SectionPattern: `^(?i)(?P<year>D\d+)\s+CS\s+(?P<section>[A-Z])$`,
			SectionFormat:  "{year}{section}{n}",
		},
		{
			Name:           "bca",
			URL:            "https://ca.gndec.ac.in/sites/default/files/ca_JAN26_groups_u.html",
			Strategy:       parser.StrategyCaption,
			SectionPattern: `^(?i)(?P<year>BCA\d+)\s*-?\s*(?P<section>[A-Z])$`,
			SectionFormat:  "{year}-{section}{n}",
			SkipFreeGroups: true,
		},
		{
			Name:           "ece",
			URL:            "https://ece.gndec.ac.in/sites/default/files/classes%20individual%20%283%29.html",
			Strategy:       parser.StrategyAnchors,
			AnchorSelector: `ul li a[href^="#table_"]`,
		},
		{
			Name:           "it",
			URL:            "https://it.gndec.ac.in/sites/default/files/jan_june2025_6%2027%20dec_years_days_horizontal%20%286%29.html",
			Strategy:       parser.StrategyAnchors,
			AnchorSelector: `ul li a[href^="#table_"]`,
		},
		{
			Name:           "civil",
			URL:            "https://ce.gndec.ac.in/sites/default/files/TT_19.01.2026_data_and_timetable_groups_days_horizontal.html",
			Strategy:       parser.StrategyAnchors,
			AnchorSelector: "ul > li > ul > li > a",
			ClassedCells:   true,
		},
		{
			Name:           "electrical",
			URL:            "https://ee.gndec.ac.in/sites/default/files/R2.1%20TT%20jan-june%202026%20%282%29_years_days_horizontal_0.html",
			Strategy:       parser.StrategyAnchors,
			AnchorSelector: "ul > li > a",
			PeriodLabels:   longFormPeriods,
		},
		{
			Name:           "mechanical",
			URL:            "https://me.gndec.ac.in/sites/default/files/JAN%20MAY%202026%20lock_groups_days_horizontal_0.html",
			Strategy:       parser.StrategyAnchors,
			AnchorSelector: `ul li a[href^="#table_"]`,
			SectionPattern: `^(?i)(?P<year>D\d+)\s+ME\s+(?P<section>[A-Z])$`,
			SectionFormat:  "{year} ME {section}{n}",
			PeriodLabels:   numberedPeriods,
		},
	}
}
