package service

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"riskassess/models"

	"github.com/xuri/excelize/v2"
)

// HistoryColumns CSV 表头，顺序固定
var HistoryColumns = []string{
	"Seq", "EvaluatedAt", "Name", "Glucose", "BloodPressure", "Weight", "HeightCm",
	"BMI", "BMICategory", "Age", "Threshold", "ProbabilityPositive", "PredictedPositive",
	"Prediction", "RiskLevel", "Advice",
}

const adviceSeparator = " | "

// 文本单元格转义：csv 读取时会把引号内的 \r\n 折叠为 \n，建议项内的 | 会与分隔符混淆
var (
	nameEscaper   = strings.NewReplacer(`\`, `\\`, "\r", `\r`)
	adviceEscaper = strings.NewReplacer(`\`, `\\`, "\r", `\r`, "|", `\p`)
)

func joinAdvice(items []string) string {
	escaped := make([]string, len(items))
	for i, item := range items {
		escaped[i] = adviceEscaper.Replace(item)
	}
	return strings.Join(escaped, adviceSeparator)
}

func splitAdvice(cell string) ([]string, error) {
	if cell == "" {
		return nil, nil
	}
	items := strings.Split(cell, adviceSeparator)
	for i, item := range items {
		v, err := unescapeCell(item)
		if err != nil {
			return nil, err
		}
		items[i] = v
	}
	return items, nil
}

// unescapeCell 还原 nameEscaper / adviceEscaper 的转义
func unescapeCell(s string) (string, error) {
	if !strings.Contains(s, `\`) {
		return s, nil
	}
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] != '\\' {
			b.WriteByte(s[i])
			continue
		}
		if i+1 == len(s) {
			return "", fmt.Errorf("dangling escape in %q", s)
		}
		i++
		switch s[i] {
		case '\\':
			b.WriteByte('\\')
		case 'r':
			b.WriteByte('\r')
		case 'p':
			b.WriteByte('|')
		default:
			return "", fmt.Errorf("unknown escape \\%c in %q", s[i], s)
		}
	}
	return b.String(), nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// WriteHistoryCSV 写出 CSV，数值保留完整精度
func WriteHistoryCSV(w io.Writer, records []models.HistoryRecord) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(HistoryColumns); err != nil {
		return err
	}
	for _, r := range records {
		row := []string{
			strconv.Itoa(r.Seq),
			r.EvaluatedAt.Format(time.RFC3339Nano),
			nameEscaper.Replace(r.Name),
			formatFloat(r.Glucose),
			formatFloat(r.BloodPressure),
			formatFloat(r.Weight),
			formatFloat(r.HeightCm),
			formatFloat(r.BMI),
			r.BMICategory.String(),
			strconv.Itoa(r.Age),
			formatFloat(r.Threshold),
			formatFloat(r.ProbabilityPositive),
			strconv.FormatBool(r.PredictedPositive),
			r.PredictionLabel(),
			r.RiskTier.String(),
			joinAdvice(r.Advice),
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

// UTF8BOM 下载文件开头的 BOM，方便 Excel 识别编码
const UTF8BOM = "\xEF\xBB\xBF"

// ParseHistoryCSV 解析 WriteHistoryCSV 的输出，允许开头带 BOM
func ParseHistoryCSV(r io.Reader) ([]models.HistoryRecord, error) {
	br := bufio.NewReader(r)
	if head, err := br.Peek(len(UTF8BOM)); err == nil && string(head) == UTF8BOM {
		br.Discard(len(UTF8BOM))
	}
	reader := csv.NewReader(br)
	reader.FieldsPerRecord = len(HistoryColumns)

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	for i, col := range HistoryColumns {
		if header[i] != col {
			return nil, fmt.Errorf("unexpected column %d: %q, expected %q", i, header[i], col)
		}
	}

	var records []models.HistoryRecord
	for line := 2; ; line++ {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		rec, err := parseHistoryRow(row)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		records = append(records, rec)
	}
	return records, nil
}

func parseHistoryRow(row []string) (models.HistoryRecord, error) {
	var (
		rec  models.HistoryRecord
		err  error
		errs []string
	)
	float := func(col int) float64 {
		v, e := strconv.ParseFloat(row[col], 64)
		if e != nil {
			errs = append(errs, HistoryColumns[col])
		}
		return v
	}
	integer := func(col int) int {
		v, e := strconv.Atoi(row[col])
		if e != nil {
			errs = append(errs, HistoryColumns[col])
		}
		return v
	}

	rec.Seq = integer(0)
	if rec.EvaluatedAt, err = time.Parse(time.RFC3339Nano, row[1]); err != nil {
		errs = append(errs, HistoryColumns[1])
	}
	if rec.Name, err = unescapeCell(row[2]); err != nil {
		errs = append(errs, HistoryColumns[2])
	}
	rec.Glucose = float(3)
	rec.BloodPressure = float(4)
	rec.Weight = float(5)
	rec.HeightCm = float(6)
	rec.BMI = float(7)
	if rec.BMICategory, err = models.ParseBMICategory(row[8]); err != nil {
		errs = append(errs, HistoryColumns[8])
	}
	rec.Age = integer(9)
	rec.Threshold = float(10)
	rec.ProbabilityPositive = float(11)
	if rec.PredictedPositive, err = strconv.ParseBool(row[12]); err != nil {
		errs = append(errs, HistoryColumns[12])
	}
	if rec.RiskTier, err = models.ParseRiskTier(row[14]); err != nil {
		errs = append(errs, HistoryColumns[14])
	}
	if rec.Advice, err = splitAdvice(row[15]); err != nil {
		errs = append(errs, HistoryColumns[15])
	}

	if len(errs) > 0 {
		return rec, fmt.Errorf("invalid %s", strings.Join(errs, ", "))
	}
	return rec, nil
}

// WriteHistoryExcel 导出 xlsx，数值按展示精度格式化
func WriteHistoryExcel(w io.Writer, records []models.HistoryRecord) error {
	f := excelize.NewFile()
	defer f.Close()

	sheetName := "History"
	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return err
	}

	border := []excelize.Border{
		{Type: "left", Color: "000000", Style: 1},
		{Type: "top", Color: "000000", Style: 1},
		{Type: "bottom", Color: "000000", Style: 1},
		{Type: "right", Color: "000000", Style: 1},
	}
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 12, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"4F81BD"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border:    border,
	})
	if err != nil {
		return err
	}
	dataStyle, err := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border:    border,
	})
	if err != nil {
		return err
	}
	// 高风险行标红
	highStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "C00000"},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border:    border,
	})
	if err != nil {
		return err
	}

	headers := []string{"#", "Time", "Name", "Glucose", "Blood Pressure", "BMI", "BMI Category",
		"Age", "Threshold", "Prediction", "Confidence", "Risk Level", "Advice"}
	widths := []float64{6, 20, 16, 10, 15, 10, 15, 8, 11, 12, 12, 11, 60}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		col, _ := excelize.ColumnNumberToName(i + 1)
		f.SetColWidth(sheetName, col, col, widths[i])
		f.SetCellValue(sheetName, cell, header)
		f.SetCellStyle(sheetName, cell, cell, headerStyle)
	}

	for i, r := range records {
		row := i + 2
		values := []interface{}{
			r.Seq,
			r.EvaluatedAt.Format("2006-01-02 15:04:05"),
			r.Name,
			r.Glucose,
			r.BloodPressure,
			fmt.Sprintf("%.2f", r.BMI),
			r.BMICategory.String(),
			r.Age,
			fmt.Sprintf("%s%%", formatFloat(r.Threshold)),
			r.PredictionLabel(),
			fmt.Sprintf("%.2f%%", r.ProbabilityPositive),
			r.RiskTier.String(),
			strings.Join(r.Advice, "\n"),
		}
		for j, v := range values {
			cell, _ := excelize.CoordinatesToCellName(j+1, row)
			f.SetCellValue(sheetName, cell, v)
		}

		style := dataStyle
		if r.RiskTier == models.RiskHigh {
			style = highStyle
		}
		first, _ := excelize.CoordinatesToCellName(1, row)
		last, _ := excelize.CoordinatesToCellName(len(headers), row)
		f.SetCellStyle(sheetName, first, last, style)
	}

	return f.Write(w)
}
