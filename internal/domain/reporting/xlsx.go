package reporting

import (
	"bytes"
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"
)

var exportHeaders = []string{
	"Facility ID", "Year", "Month", "Outpatient Visits", "Inpatient Admissions",
	"ANC Visits", "Deliveries", "Immunizations Given", "Screenings Done",
	"Referrals Out", "Referrals Completed", "Stockout Count",
	"Confirmed Disease Cases", "Deaths Reported", "Approved",
}

// ExportXLSX renders every report for the period as a spreadsheet, one
// facility per row.
func (s *Service) ExportXLSX(ctx context.Context, year, month int) ([]byte, error) {
	if err := validPeriod(year, month); err != nil {
		return nil, err
	}
	reports, _, err := s.reports.List(ctx, ListFilter{Year: year, Month: month}, 10000, 0)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := fmt.Sprintf("%04d-%02d", year, month)
	f.SetSheetName("Sheet1", sheet)

	for col, header := range exportHeaders {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return nil, err
		}
	}

	for i, r := range reports {
		values := []any{
			r.FacilityID.String(), r.Year, r.Month, r.OutpatientVisits,
			r.InpatientAdmission, r.ANCVisits, r.Deliveries,
			r.ImmunizationsGiven, r.ScreeningsDone, r.ReferralsOut,
			r.ReferralsCompleted, r.StockoutCount,
			r.DiseaseCasesConf, r.DeathsReported, r.Approved,
		}
		for col, value := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return nil, err
			}
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
