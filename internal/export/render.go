package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/Wolfsquad9/nutrition-coach-bot-sub000/internal/mealgen"
	"github.com/jung-kurt/gofpdf"
)

// Render produces the bytes of one export.
func Render(doc Document, kind Kind, f Format) ([]byte, error) {
	switch f {
	case FormatJSON:
		return renderJSON(doc, kind)
	case FormatCSV:
		if kind == KindGrocery {
			return groceryCSV(doc)
		}
		return planCSV(doc)
	case FormatPDF:
		return renderPDF(doc, kind)
	default:
		return nil, fmt.Errorf("unsupported format: %s", f)
	}
}

func renderJSON(doc Document, kind Kind) ([]byte, error) {
	var v any
	if kind == KindGrocery {
		v = struct {
			Version   int                   `json:"version"`
			StartDate string                `json:"start_date"`
			Items     []mealgen.GroceryItem `json:"items"`
		}{doc.Version, doc.StartDate.Format("2006-01-02"), doc.Groceries}
	} else {
		v = struct {
			Version   int                      `json:"version"`
			StartDate string                   `json:"start_date"`
			Week      mealgen.WeeklyPlanResult `json:"week"`
		}{doc.Version, doc.StartDate.Format("2006-01-02"), doc.Week}
	}
	return json.MarshalIndent(v, "", "  ")
}

func planCSV(doc Document) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := []string{"date", "day", "slot", "meal", "ingredient_id", "ingredient", "grams", "calories", "protein_g", "carbs_g", "fat_g"}
	if err := w.Write(header); err != nil {
		return nil, err
	}

	for i, day := range doc.Week.Days {
		date := doc.StartDate.AddDate(0, 0, i).Format("2006-01-02")
		for _, meal := range day.Plan.OrderedMeals() {
			if meal.Placeholder {
				row := []string{date, day.DayName, string(meal.Slot), meal.Message, "", "", "", "", "", "", ""}
				if err := w.Write(row); err != nil {
					return nil, err
				}
				continue
			}
			for _, ing := range meal.Ingredients {
				row := []string{
					date,
					day.DayName,
					string(meal.Slot),
					meal.Title,
					ing.IngredientID,
					ing.Name,
					strconv.Itoa(ing.Grams),
					formatFloat(ing.Macros.Calories),
					formatFloat(ing.Macros.Protein),
					formatFloat(ing.Macros.Carbs),
					formatFloat(ing.Macros.Fat),
				}
				if err := w.Write(row); err != nil {
					return nil, err
				}
			}
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

func groceryCSV(doc Document) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write([]string{"category", "ingredient_id", "ingredient", "total_grams"}); err != nil {
		return nil, err
	}
	for _, item := range doc.Groceries {
		row := []string{string(item.Category), item.IngredientID, item.Name, strconv.Itoa(item.TotalGrams)}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// renderPDF uses the core Helvetica font; catalog names are plain ASCII.
func renderPDF(doc Document, kind Kind) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(fmt.Sprintf("Meal plan v%d", doc.Version), false)
	pdf.SetAutoPageBreak(true, 15)

	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	title := "Weekly meal plan"
	if kind == KindGrocery {
		title = "Grocery list"
	}
	if doc.ClientName != "" {
		title += " - " + doc.ClientName
	}
	pdf.Cell(0, 10, title)
	pdf.Ln(9)

	pdf.SetFont("Helvetica", "", 10)
	end := doc.StartDate.AddDate(0, 0, len(doc.Week.Days)-1)
	pdf.Cell(0, 6, fmt.Sprintf("%s to %s  |  version %d  |  seed %d",
		doc.StartDate.Format("2006-01-02"), end.Format("2006-01-02"), doc.Version, doc.Week.Seed))
	pdf.Ln(10)

	if kind == KindGrocery {
		drawGroceryTable(pdf, doc.Groceries)
	} else {
		drawWeekSummary(pdf, doc.Week)
		for i, day := range doc.Week.Days {
			drawDay(pdf, day, doc.StartDate.AddDate(0, 0, i).Format("2006-01-02"))
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}

	return buf.Bytes(), nil
}

func drawWeekSummary(pdf *gofpdf.Fpdf, week mealgen.WeeklyPlanResult) {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, "Week totals")
	pdf.Ln(8)

	colWidths := []float64{40, 35, 35, 35, 35}
	headers := []string{"", "Calories", "Protein g", "Carbs g", "Fat g"}
	drawRow(pdf, colWidths, headers, true)
	drawRow(pdf, colWidths, macroRow("Target", week.WeeklyTargetMacros.Calories, week.WeeklyTargetMacros.Protein, week.WeeklyTargetMacros.Carbs, week.WeeklyTargetMacros.Fat), false)
	drawRow(pdf, colWidths, macroRow("Planned", week.WeeklyTotalMacros.Calories, week.WeeklyTotalMacros.Protein, week.WeeklyTotalMacros.Carbs, week.WeeklyTotalMacros.Fat), false)
	drawRow(pdf, colWidths, macroRow("Variance", week.WeeklyVariance.Calories, week.WeeklyVariance.Protein, week.WeeklyVariance.Carbs, week.WeeklyVariance.Fat), false)
	pdf.Ln(6)
}

func drawDay(pdf *gofpdf.Fpdf, day mealgen.DayPlan, date string) {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, fmt.Sprintf("%s %s", day.DayName, date))
	pdf.Ln(8)

	colWidths := []float64{25, 75, 22, 22, 22, 22}
	drawRow(pdf, colWidths, []string{"Slot", "Meal", "kcal", "P", "C", "F"}, true)
	for _, meal := range day.Plan.OrderedMeals() {
		if meal.Placeholder {
			drawRow(pdf, colWidths, []string{string(meal.Slot), meal.Message, "", "", "", ""}, false)
			continue
		}
		drawRow(pdf, colWidths, []string{
			string(meal.Slot),
			truncate(meal.Title, 45),
			formatFloat(meal.Macros.Calories),
			formatFloat(meal.Macros.Protein),
			formatFloat(meal.Macros.Carbs),
			formatFloat(meal.Macros.Fat),
		}, false)
	}

	t := day.Plan.TotalMacros
	drawRow(pdf, colWidths, []string{"Total", "", formatFloat(t.Calories), formatFloat(t.Protein), formatFloat(t.Carbs), formatFloat(t.Fat)}, true)

	info := day.Plan.ConvergenceInfo
	pdf.SetFont("Helvetica", "I", 8)
	status := "within tolerance"
	if !info.Converged {
		status = info.Reason
	}
	pdf.MultiCell(0, 4, fmt.Sprintf("Iterations: %d. %s", info.Iterations, status), "", "L", false)
	pdf.Ln(4)
}

func drawGroceryTable(pdf *gofpdf.Fpdf, items []mealgen.GroceryItem) {
	colWidths := []float64{35, 100, 35}
	drawRow(pdf, colWidths, []string{"Category", "Ingredient", "Grams"}, true)
	for _, item := range items {
		drawRow(pdf, colWidths, []string{string(item.Category), item.Name, strconv.Itoa(item.TotalGrams)}, false)
	}
}

func drawRow(pdf *gofpdf.Fpdf, widths []float64, cells []string, bold bool) {
	style := ""
	if bold {
		style = "B"
	}
	pdf.SetFont("Helvetica", style, 9)
	for i, c := range cells {
		pdf.CellFormat(widths[i], 6, c, "1", 0, "L", false, 0, "")
	}
	pdf.Ln(-1)
}

func macroRow(label string, cal, p, c, f float64) []string {
	return []string{label, formatFloat(cal), formatFloat(p), formatFloat(c), formatFloat(f)}
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}
