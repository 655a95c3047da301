package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gdamore/tcell"
	"github.com/rivo/tview"

	"github.com/elisagaudchau/oemof/internal/pkg/model"
)

const logo = `
  ____  ______ __  __  ____  ______
 / __ \|  ____|  \/  |/ __ \|  ____|
| |  | | |__  | \  / | |  | | |__
| |  | |  __| | |\/| | |  | |  __|
| |__| | |____| |  | | |__| | |
 \____/|______|_|  |_|\____/|_|
`

type HMI func(*tview.Pages) (title string, content tview.Primitive)

var app = tview.NewApplication()
var table *tview.Table

var header = []string{"Name", "PID", "Status", "Objective", "Horizon"}

func main() {
	serviceURL := flag.String("url", "http://localhost:8080", "run store web service")
	flag.Parse()

	hmis := []HMI{
		Splash,
		Overview,
	}

	pages := tview.NewPages()

	for _, hmi := range hmis {
		title, primitive := hmi(pages)
		pages.AddPage(title, primitive, true, title == "Splash")
	}

	layout := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(pages, 0, 1, true)

	go updateScheduler(*serviceURL)
	if err := app.SetRoot(layout, true).Run(); err != nil {
		panic(err)
	}
}

func updateScheduler(serviceURL string) {
	refreshInterval := time.Tick(2 * time.Second)
	for range refreshInterval {
		runs, err := fetchRuns(serviceURL)
		if err != nil {
			continue
		}
		app.QueueUpdateDraw(func() {
			fillTable(runs)
		})
	}
}

func fetchRuns(serviceURL string) ([]model.Report, error) {
	resp, err := http.Get(serviceURL + "/runs")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	runs := []model.Report{}
	if err := json.NewDecoder(resp.Body).Decode(&runs); err != nil {
		return nil, err
	}
	return runs, nil
}

func fillTable(runs []model.Report) {
	table.Clear()
	for column, cell := range header {
		tableCell := tview.NewTableCell(cell).
			SetTextColor(tcell.ColorYellow).
			SetAlign(tview.AlignLeft).
			SetSelectable(false)
		table.SetCell(0, column, tableCell)
	}
	for i, run := range runs {
		cells := []string{
			run.Name,
			run.PID.String(),
			run.Status,
			strconv.FormatFloat(run.Objective, 'f', 2, 64),
			strconv.Itoa(run.Horizon),
		}
		for column, cell := range cells {
			color := tcell.ColorWhite
			if column == 0 {
				color = tcell.ColorDarkCyan
			}
			tableCell := tview.NewTableCell(cell).
				SetTextColor(color).
				SetAlign(tview.AlignLeft).
				SetSelectable(true)
			table.SetCell(i+1, column, tableCell)
		}
	}
}

func Splash(pages *tview.Pages) (title string, content tview.Primitive) {
	lines := strings.Split(logo, "\n")
	logoWidth := 0
	logoHeight := len(lines)
	for _, line := range lines {
		if len(line) > logoWidth {
			logoWidth = len(line)
		}
	}
	logoBox := tview.NewTextView().
		SetTextColor(tcell.ColorBlue).
		SetDoneFunc(func(key tcell.Key) {
			pages.ShowPage("Overview")
		})

	fmt.Fprint(logoBox, logo)

	frame := tview.NewFrame(tview.NewBox()).
		SetBorders(0, 0, 0, 0, 0, 0).
		AddText("Energy System Modeler v0.1", true, tview.AlignCenter, tcell.ColorWhite).
		AddText("", true, tview.AlignCenter, tcell.ColorWhite).
		AddText("press enter", true, tview.AlignCenter, tcell.ColorDarkMagenta)

	flex := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(tview.NewBox(), 0, 5, false).
		AddItem(tview.NewFlex().
			AddItem(tview.NewBox(), 0, 1, false).
			AddItem(logoBox, logoWidth, 1, true).
			AddItem(tview.NewBox(), 0, 1, false), logoHeight, 1, true).
		AddItem(frame, 0, 10, false)

	return "Splash", flex
}

func Overview(pages *tview.Pages) (title string, content tview.Primitive) {
	table = tview.NewTable().
		SetFixed(1, 0)

	fillTable(nil)

	table.SetBorder(true).SetTitle(" Runs ")

	table.SetBorders(false).
		SetSelectable(true, false).
		SetSeparator(' ')

	flex := tview.NewFlex().
		AddItem(tview.NewFlex().
			SetDirection(tview.FlexRow).
			AddItem(table, 0, 1, true), 0, 1, true)

	return "Overview", flex
}
