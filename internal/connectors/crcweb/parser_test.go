package crcweb

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const reportPage = `<html><body>
<div class="report2">
  <table class="report2">
    <tr><td class="label">Min Depth</td><td class="label">Max Depth</td><td class="label">Age</td><td class="label">Formation</td></tr>
    <tr><td> 1200 </td><td>1250</td><td>Cretaceous</td><td>Niobrara</td></tr>
    <tr><td>1300</td><td>1310</td><td></td><td>Codell</td></tr>
  </table>
  <table class="report2">
    <tr><td class="label">Sequence</td><td class="label">Min Depth</td><td class="label">Max Depth</td><td class="label">View</td></tr>
    <tr><td>1</td><td>1201</td><td>1202</td><td><a href="/crcwc/thin/1.jpg">view</a></td></tr>
  </table>
  <table class="report2">
    <tr><td class="label">Something</td><td class="label">Else</td></tr>
    <tr><td>a</td><td>b</td></tr>
  </table>
  <a title="see photo" href="/crcwc/photos/A1-1.jpg">photo</a>
  <a title="see photo" href="/crcwc/photos/A1-1.jpg">same photo</a>
  <a title="see photo" href="https://cdn.example/A1-2.jpg">photo 2</a>
  <a title="download analysis document" href="docs/analysis.pdf">doc</a>
  <a href="/elsewhere">unrelated</a>
</div>
<div><a title="see photo" href="/outside.jpg">outside report section</a></div>
</body></html>`

const pageURL = "https://crc.example/crcwc/core/report/A1"

func TestParse_ReportPage(t *testing.T) {
	page, err := Parse(strings.NewReader(reportPage), pageURL)
	require.NoError(t, err)

	assert.Equal(t, []map[string]string{
		{"Min Depth": "1200", "Max Depth": "1250", "Age": "Cretaceous", "Formation": "Niobrara"},
		{"Min Depth": "1300", "Max Depth": "1310", "Age": "", "Formation": "Codell"},
	}, page.Intervals)

	assert.Equal(t, []map[string]string{
		{"Sequence": "1", "Min Depth": "1201", "Max Depth": "1202", "View": "https://crc.example/crcwc/thin/1.jpg"},
	}, page.ThinSections)

	assert.Equal(t, []string{
		"https://crc.example/crcwc/photos/A1-1.jpg",
		"https://cdn.example/A1-2.jpg",
	}, page.Photos)
	assert.Equal(t, []string{"https://crc.example/crcwc/core/report/docs/analysis.pdf"}, page.Documents)
}

func TestParse_NoReportMarkup(t *testing.T) {
	page, err := Parse(strings.NewReader(`<html><body><p>Record not found</p></body></html>`), pageURL)
	require.NoError(t, err)
	assert.True(t, page.IsEmpty())
}

func TestParse_HeaderOnlyTable(t *testing.T) {
	html := `<table class="report2"><tr><td class="label">Min Depth</td><td class="label">Max Depth</td>` +
		`<td class="label">Age</td><td class="label">Formation</td></tr></table>`

	page, err := Parse(strings.NewReader(html), pageURL)
	require.NoError(t, err)
	assert.Empty(t, page.Intervals)
	assert.True(t, page.IsEmpty())
}

func TestParse_IgnoresExtraCells(t *testing.T) {
	html := `<table class="report2 wide">
		<tr><td class="label">Sequence</td><td class="label">Min Depth</td><td class="label">Max Depth</td><td class="label">View</td></tr>
		<tr><td>7</td><td>10</td><td>11</td><td>none</td><td>overflow</td></tr>
	</table>`

	page, err := Parse(strings.NewReader(html), pageURL)
	require.NoError(t, err)
	require.Len(t, page.ThinSections, 1)
	assert.Len(t, page.ThinSections[0], 4)
	assert.Equal(t, "none", page.ThinSections[0]["View"])
}

func TestParse_InvalidPageURL(t *testing.T) {
	_, err := Parse(strings.NewReader("<html></html>"), "://bad")
	assert.Error(t, err)
}
