package inventory

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"
	"github.com/xuri/excelize/v2"
)

func statusText(r Result) string {
	if r.Available {
		return "available"
	}
	return "booked"
}

// BuildReportXLSX renders an availability report as a spreadsheet with a
// summary sheet and one row per device.
func BuildReportXLSX(report Report) ([]byte, error) {
	f := excelize.NewFile()
	summarySheet := "summary"
	devicesSheet := "devices"
	f.SetSheetName("Sheet1", summarySheet)
	f.NewSheet(devicesSheet)

	available := len(report.AvailableDevices())

	_ = f.SetCellValue(summarySheet, "A1", "Device Availability")
	_ = f.SetCellValue(summarySheet, "A3", "From")
	_ = f.SetCellValue(summarySheet, "B3", report.Start)
	_ = f.SetCellValue(summarySheet, "A4", "To")
	_ = f.SetCellValue(summarySheet, "B4", report.End)
	_ = f.SetCellValue(summarySheet, "A5", "Devices")
	_ = f.SetCellValue(summarySheet, "B5", len(report.Results))
	_ = f.SetCellValue(summarySheet, "A6", "Available")
	_ = f.SetCellValue(summarySheet, "B6", available)

	_ = f.SetCellValue(devicesSheet, "A1", "Name")
	_ = f.SetCellValue(devicesSheet, "B1", "Tag")
	_ = f.SetCellValue(devicesSheet, "C1", "Status")
	_ = f.SetCellValue(devicesSheet, "D1", "Reason")
	_ = f.SetCellValue(devicesSheet, "E1", "Booked From")
	_ = f.SetCellValue(devicesSheet, "F1", "Booked To")
	for i, r := range report.Results {
		row := i + 2
		_ = f.SetCellValue(devicesSheet, fmt.Sprintf("A%d", row), r.Device.Name)
		_ = f.SetCellValue(devicesSheet, fmt.Sprintf("B%d", row), r.Device.Tag)
		_ = f.SetCellValue(devicesSheet, fmt.Sprintf("C%d", row), statusText(r))
		_ = f.SetCellValue(devicesSheet, fmt.Sprintf("D%d", row), r.Reason)
		_ = f.SetCellValue(devicesSheet, fmt.Sprintf("E%d", row), r.Device.StartDate)
		_ = f.SetCellValue(devicesSheet, fmt.Sprintf("F%d", row), r.Device.EndDate)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// BuildReportPDF renders an availability report as a minimal PDF.
func BuildReportPDF(report Report) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetFont("Arial", "", 12)
	pdf.AddPage()

	pdf.Cell(0, 8, "Device Availability")
	pdf.Ln(10)
	pdf.SetFont("Arial", "", 10)
	pdf.Cell(0, 6, fmt.Sprintf("From: %s", report.Start))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("To: %s", report.End))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Available: %d of %d devices", len(report.AvailableDevices()), len(report.Results)))
	pdf.Ln(8)

	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(55, 6, "Device", "1", 0, "L", false, 0, "")
	pdf.CellFormat(30, 6, "Tag", "1", 0, "L", false, 0, "")
	pdf.CellFormat(25, 6, "Status", "1", 0, "C", false, 0, "")
	pdf.CellFormat(80, 6, "Reason", "1", 0, "L", false, 0, "")
	pdf.Ln(-1)
	pdf.SetFont("Arial", "", 10)
	for _, r := range report.Results {
		pdf.CellFormat(55, 6, r.Device.Name, "1", 0, "L", false, 0, "")
		pdf.CellFormat(30, 6, r.Device.Tag, "1", 0, "L", false, 0, "")
		pdf.CellFormat(25, 6, statusText(r), "1", 0, "C", false, 0, "")
		pdf.CellFormat(80, 6, r.Reason, "1", 0, "L", false, 0, "")
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
