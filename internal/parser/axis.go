package parser

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Row is one period of a timetable: its label and one cell per day.
type Row struct {
	Period string
	Cells  []*goquery.Selection
}

// RawTable is a located table reduced to its two axes.
type RawTable struct {
	Label   string
	Days    []string
	Rows    []Row
	Dropped int // body rows without a period label or with the wrong width
}

// ReadAxes extracts the day axis (th.xAxis headers) and the period rows
// (th.yAxis) of a table. When periods is non-nil, period labels found in it
// are replaced by the mapped value; other labels pass through unchanged.
func ReadAxes(loc Located, periods map[string]string) RawTable {
	rt := RawTable{Label: loc.Label, Days: dayAxis(loc.Table)}

	loc.Table.ChildrenFiltered("tbody").ChildrenFiltered("tr").Each(func(_ int, tr *goquery.Selection) {
		if tr.HasClass("foot") {
			rt.Dropped++
			return
		}
		y := tr.ChildrenFiltered("th.yAxis").First()
		period := strings.TrimSpace(y.Text())
		if y.Length() == 0 || period == "" {
			if tr.ChildrenFiltered("td").Length() > 0 {
				rt.Dropped++
			}
			return
		}
		if mapped, ok := periods[period]; ok {
			period = mapped
		}

		tds := tr.ChildrenFiltered("td")
		if tds.Length() != len(rt.Days) {
			rt.Dropped++
			return
		}
		row := Row{Period: period, Cells: make([]*goquery.Selection, 0, tds.Length())}
		tds.Each(func(_ int, td *goquery.Selection) {
			row.Cells = append(row.Cells, td)
		})
		rt.Rows = append(rt.Rows, row)
	})
	return rt
}

// dayAxis returns the texts of the last header row carrying th.xAxis cells.
// Some exports put that row at the top of the body instead of in <thead>.
func dayAxis(table *goquery.Selection) []string {
	var days []string
	collect := func(_ int, tr *goquery.Selection) {
		xs := tr.ChildrenFiltered("th.xAxis")
		if xs.Length() == 0 {
			return
		}
		days = days[:0]
		xs.Each(func(_ int, th *goquery.Selection) {
			days = append(days, cleanText(th.Text()))
		})
	}
	table.ChildrenFiltered("thead").ChildrenFiltered("tr").Each(collect)
	if len(days) == 0 {
		table.ChildrenFiltered("tbody").ChildrenFiltered("tr").First().Each(collect)
	}
	return days
}
