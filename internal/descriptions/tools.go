package descriptions

import "sort"

// Tool names
const (
	StampCheckFile      = "stamp_check_file"
	StampCheckDirectory = "stamp_check_directory"
	StampReference      = "stamp_reference"
	StampListDrawings   = "stamp_list_drawings"
)

// Tool descriptions with practical examples and use cases

const (
	StampCheckFileDescription = `Check the title block (stamp) of a single engineering drawing PDF.

**When to use:** Need to confirm that one drawing carries the expected stamp annotations before it is issued.

**What it checks:**
• File name found: the file name without extension and without a trailing "_assinado" appears in the drawing text
• Sheet found: the sheet identifier at the end of the file name ("02-07", "02_007", "001-003") appears in the text
• Project found: the description of the "PRJ-<CODE>-" project code appears in the text
• Keywords: every registered engineer name and CREA number plus the supplementary keywords found in the text
• Signed: the file name contains "assinado"

**Examples:**
• "Check PRJ-ECX-IPER-02-07_assinado.pdf"
• "Check drawings/PRJ-ILUX-A-01-03.pdf with keywords FOLHA and REVISÃO"

**Best practices:** Paths are relative to the configured drawing directory. Leave keywords empty to use the default list.`

	StampCheckDirectoryDescription = `Check every drawing PDF in a directory and summarize the batch.

**When to use:** Auditing a delivery of drawings before submission, or producing the spreadsheet report for a batch.

**Why it's useful:** Returns one line per drawing plus totals (files with name, sheet and project found, signed files) and per-engineer and per-project counts. Files that cannot be read are listed and skipped without stopping the batch.

**Examples:**
• Audit a delivery: "Check all drawings in deliveries/2024-03"
• Produce the report: "Check deliveries/2024-03 and write the report to deliveries/2024-03/report.xlsx"

**Common workflows:**
1. Delivery audit: stamp_reference → stamp_check_directory → fix drawings reported with "No"
2. Reporting: stamp_check_directory with output → share the xlsx workbook

**Best practices:** Use recursive for nested delivery folders. The output path must end in .xlsx and stay inside the drawing directory.`

	StampListDrawingsDescription = `List the drawing PDFs of a directory without scanning their text.

**When to use:** Before a batch check, to see which drawings will be processed, how many pages each has and what their file names declare.

**What it shows:** Size, page count and modification time of every PDF, plus the project code, project description, sheet number and signed flag parsed from the file name. Files pdfcpu cannot read are marked unreadable.

**Examples:**
• "Which drawings are in deliveries/2024-03?"
• "List all drawings including subfolders"`

	StampReferenceDescription = `List the reference data used by the stamp checks.

**When to use:** Before a check, to see which engineers, CREA registrations, project codes and default keywords are matched.

**Best practices:** Registrations and engineer names are always searched; supplementary keywords replace the defaults when given.`
)

// ToolDescriptions maps tool names to their descriptions
var ToolDescriptions = map[string]string{
	StampCheckFile:      StampCheckFileDescription,
	StampCheckDirectory: StampCheckDirectoryDescription,
	StampReference:      StampReferenceDescription,
	StampListDrawings:   StampListDrawingsDescription,
}

// GetToolDescription returns the description for a tool
func GetToolDescription(toolName string) string {
	if desc, exists := ToolDescriptions[toolName]; exists {
		return desc
	}
	return "Tool description not available"
}

// GetAllToolNames returns the available tool names in sorted order
func GetAllToolNames() []string {
	names := make([]string, 0, len(ToolDescriptions))
	for name := range ToolDescriptions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
