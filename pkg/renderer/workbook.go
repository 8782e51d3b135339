package renderer

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"

	"github.com/nikogura/resume-parser/pkg/resume"
)

// Workbook sheet names.
const (
	SheetResults  = "Results"
	SheetSkills   = "Skills"
	SheetWarnings = "Warnings"
)

// Entry is one parsed file in a batch workbook.
type Entry struct {
	Source string
	Result resume.Result
}

//nolint:gochecknoglobals // Column layout of the results sheet
var resultColumns = []interface{}{
	"Source", "Success", "Overall", "Text Clarity", "Structure", "Entities",
	"Name", "Email", "Phone", "Experience", "Education", "Skills", "Projects", "Error",
}

// WriteWorkbook writes one results row per entry, one row per extracted skill and one row per warning.
func WriteWorkbook(entries []Entry, outputPath string) (err error) {
	f := excelize.NewFile()
	defer func() {
		closeErr := f.Close()
		if err == nil && closeErr != nil {
			err = errors.Wrap(closeErr, "failed to close workbook")
		}
	}()

	err = f.SetSheetName("Sheet1", SheetResults)
	if err != nil {
		err = errors.Wrap(err, "failed to name results sheet")
		return err
	}
	for _, sheet := range []string{SheetSkills, SheetWarnings} {
		_, err = f.NewSheet(sheet)
		if err != nil {
			err = errors.Wrapf(err, "failed to create sheet %s", sheet)
			return err
		}
	}

	var bold int
	bold, err = f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		err = errors.Wrap(err, "failed to create header style")
		return err
	}

	sheets := map[string][][]interface{}{
		SheetResults:  {resultColumns},
		SheetSkills:   {{"Source", "Category", "Skill"}},
		SheetWarnings: {{"Source", "Warning"}},
	}

	for _, entry := range entries {
		sheets[SheetResults] = append(sheets[SheetResults], resultRow(entry))
		if entry.Result.Resume == nil {
			continue
		}

		parsed := entry.Result.Resume
		for _, group := range skillRows(parsed.ExtractedData.Skills) {
			for _, skill := range group.skills {
				sheets[SheetSkills] = append(sheets[SheetSkills], []interface{}{entry.Source, group.key, skill})
			}
		}
		for _, warning := range parsed.Warnings {
			sheets[SheetWarnings] = append(sheets[SheetWarnings], []interface{}{entry.Source, warning})
		}
	}

	for _, sheet := range []string{SheetResults, SheetSkills, SheetWarnings} {
		err = writeRows(f, sheet, sheets[sheet], bold)
		if err != nil {
			return err
		}
	}

	outputDir := filepath.Dir(outputPath)
	err = os.MkdirAll(outputDir, 0750)
	if err != nil {
		err = errors.Wrapf(err, "failed to create output directory: %s", outputDir)
		return err
	}

	err = f.SaveAs(outputPath)
	if err != nil {
		err = errors.Wrapf(err, "failed to save workbook: %s", outputPath)
		return err
	}

	return err
}

func writeRows(f *excelize.File, sheet string, rows [][]interface{}, headerStyle int) (err error) {
	for i, row := range rows {
		var cell string
		cell, err = excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			err = errors.Wrap(err, "invalid cell coordinates")
			return err
		}

		err = f.SetSheetRow(sheet, cell, &row)
		if err != nil {
			err = errors.Wrapf(err, "failed to write %s row %d", sheet, i+1)
			return err
		}
	}

	var last string
	last, err = excelize.CoordinatesToCellName(len(rows[0]), 1)
	if err != nil {
		err = errors.Wrap(err, "invalid cell coordinates")
		return err
	}

	err = f.SetCellStyle(sheet, "A1", last, headerStyle)
	if err != nil {
		err = errors.Wrapf(err, "failed to style %s header", sheet)
		return err
	}

	return err
}

func resultRow(entry Entry) (row []interface{}) {
	result := entry.Result
	if !result.Success || result.Resume == nil {
		row = []interface{}{entry.Source, false, "", "", "", "", "", "", "", "", "", "", "", result.Error}
		return row
	}

	parsed := result.Resume
	data := parsed.ExtractedData
	row = []interface{}{
		entry.Source,
		true,
		parsed.Confidence.Overall,
		parsed.Confidence.TextClarity,
		parsed.Confidence.StructureDetection,
		parsed.Confidence.EntityCount,
		data.PersonalInfo.Name,
		data.PersonalInfo.Email,
		data.PersonalInfo.Phone,
		len(data.Experience),
		len(data.Education),
		data.Skills.Count(),
		len(data.Projects),
		"",
	}
	return row
}

// skillRows lists categories in the same priority order as SkillCategories.All.
func skillRows(skills resume.SkillCategories) (groups []skillGroup) {
	groups = []skillGroup{
		{"languages", "languages", skills.Languages},
		{"frameworks", "frameworks", skills.Frameworks},
		{"databases", "databases", skills.Databases},
		{"tools", "tools", skills.Tools},
		{"softSkills", "soft skills", skills.SoftSkills},
		{"technical", "technical", skills.Technical},
	}
	return groups
}
