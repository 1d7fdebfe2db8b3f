package main

import (
	"io"

	"github.com/olekukonko/tablewriter"
)

type VisualTable struct {
	Header   []string
	Data     [][]string
	RowColor []RowColor
}

// RowColor colours the given columns of one row; other columns keep the default.
type RowColor struct {
	row    int
	column []int
	color  []tablewriter.Colors
}

func NewVisualTable(header []string, data [][]string, rowColor []RowColor) *VisualTable {
	return &VisualTable{
		Header:   header,
		Data:     data,
		RowColor: rowColor,
	}
}

func (v *VisualTable) colorsFor(index int, width int) []tablewriter.Colors {
	for _, rowColor := range v.RowColor {
		if rowColor.row != index {
			continue
		}
		colors := make([]tablewriter.Colors, width)
		for n, colIndex := range rowColor.column {
			if colIndex < width && n < len(rowColor.color) {
				colors[colIndex] = rowColor.color[n]
			}
		}
		return colors
	}
	return nil
}

func (v *VisualTable) Generate(w io.Writer) {
	table := tablewriter.NewWriter(w)

	for index, datum := range v.Data {
		if colors := v.colorsFor(index, len(datum)); colors != nil {
			table.Rich(datum, colors)
		} else {
			table.Append(datum)
		}
	}

	table.SetHeader(v.Header)
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(true)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetHeaderLine(false)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetBorder(false)
	table.SetTablePadding("\t")
	table.SetNoWhiteSpace(true)
	table.Render()
}
