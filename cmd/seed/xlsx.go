package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/bufgix/recipe-blog-backend/internal/app/form"
	"github.com/xuri/excelize/v2"
)

// 시트 컬럼 순서
const (
	colTitle = iota
	colCategory
	colDifficulty
	colIngredients // "이름:수량;이름:수량"
	colSteps       // "과정1|과정2"
	colTags        // "태그1,태그2"
	colTip
)

func readRecipesFromXLSX(filePath string) ([]form.Draft, int, error) {
	f, err := excelize.OpenFile(filePath)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to open XLSX file: %w", err)
	}
	defer f.Close()

	// 첫 번째 시트 이름 가져오기
	sheetName := f.GetSheetName(0)
	if sheetName == "" {
		return nil, 0, fmt.Errorf("no sheets found in XLSX file")
	}

	// 모든 행 읽기
	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to read rows: %w", err)
	}

	if len(rows) == 0 {
		return nil, 0, fmt.Errorf("no data found in XLSX file")
	}

	var drafts []form.Draft
	skipped := 0

	// 첫 행은 헤더이므로 스킵
	for i, row := range rows[1:] {
		d, err := draftFromRow(row)
		if err != nil {
			fmt.Printf("  row %d skipped: %v\n", i+2, err)
			skipped++
			continue
		}
		drafts = append(drafts, d)
	}

	return drafts, skipped, nil
}

func cell(row []string, idx int) string {
	if idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// draftFromRow 한 행을 폼 초안으로 변환. 편집 화면과 같은 리듀서를 거친다.
func draftFromRow(row []string) (form.Draft, error) {
	title := cell(row, colTitle)
	if title == "" {
		return form.Draft{}, fmt.Errorf("title is empty")
	}

	actions := []form.Action{
		form.SetTitle(title),
		form.SetCategory(cell(row, colCategory)),
		form.SetTip(cell(row, colTip)),
	}

	if raw := cell(row, colDifficulty); raw != "" {
		level, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return form.Draft{}, fmt.Errorf("invalid difficulty %q", raw)
		}
		actions = append(actions, form.SetDifficulty(level))
	}

	// 기본 빈 행을 지우고 채운다
	actions = append(actions, form.RemoveIngredient(0), form.RemoveStep(0))

	ingredientCount := 0
	for _, pair := range strings.Split(cell(row, colIngredients), ";") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		name, amount, _ := strings.Cut(pair, ":")
		actions = append(actions,
			form.AddIngredient(),
			form.UpdateIngredient(ingredientCount, strings.TrimSpace(name), strings.TrimSpace(amount)),
		)
		ingredientCount++
	}

	stepCount := 0
	for _, step := range strings.Split(cell(row, colSteps), "|") {
		step = strings.TrimSpace(step)
		if step == "" {
			continue
		}
		actions = append(actions, form.AddStep(), form.UpdateStep(stepCount, step))
		stepCount++
	}

	for _, tag := range strings.Split(cell(row, colTags), ",") {
		actions = append(actions, form.AddTag(tag))
	}

	return form.Reduce(form.NewDraft(), actions...), nil
}
