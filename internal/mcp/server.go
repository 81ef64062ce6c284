package mcp

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/a3tai/pdf-stamp-checker/internal/checker"
	"github.com/a3tai/pdf-stamp-checker/internal/config"
	"github.com/a3tai/pdf-stamp-checker/internal/descriptions"
	"github.com/a3tai/pdf-stamp-checker/internal/report"
	"github.com/a3tai/pdf-stamp-checker/internal/stamp"
)

// Server represents the MCP server instance
type Server struct {
	config    *config.Config
	checker   *checker.Service
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP server instance
func NewServer(cfg *config.Config, checkerService *checker.Service) (*Server, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}
	if checkerService == nil {
		return nil, fmt.Errorf("checker service cannot be nil")
	}

	mcpServer := server.NewMCPServer(
		cfg.ServerName,
		cfg.Version,
		server.WithToolCapabilities(false), // We don't support dynamic tool capabilities
	)

	s := &Server{
		config:    cfg,
		checker:   checkerService,
		mcpServer: mcpServer,
	}

	s.registerTools()

	return s, nil
}

// checkOptions are the arguments shared by the check tools
func checkOptions() []mcp.ToolOption {
	return []mcp.ToolOption{
		mcp.WithString("keywords",
			mcp.Description("Supplementary keywords, one per line (uses the default list if omitted)"),
		),
		mcp.WithBoolean("check_filename",
			mcp.Description("Look for the file name in the drawing text (default true)"),
		),
		mcp.WithBoolean("check_sheet",
			mcp.Description("Look for the sheet number in the drawing text (default true)"),
		),
		mcp.WithBoolean("check_project",
			mcp.Description("Look for the project description in the drawing text (default true)"),
		),
	}
}

// registerTools registers all available MCP tools
func (s *Server) registerTools() {
	fileOpts := append([]mcp.ToolOption{
		mcp.WithDescription(descriptions.GetToolDescription(descriptions.StampCheckFile)),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Path to the drawing PDF, relative to the drawing directory"),
		),
	}, checkOptions()...)
	s.mcpServer.AddTool(mcp.NewTool(descriptions.StampCheckFile, fileOpts...), s.handleCheckFile)

	dirOpts := append([]mcp.ToolOption{
		mcp.WithDescription(descriptions.GetToolDescription(descriptions.StampCheckDirectory)),
		mcp.WithString("directory",
			mcp.Description("Directory to check (uses the drawing directory if empty)"),
		),
		mcp.WithBoolean("recursive",
			mcp.Description("Include PDFs in subdirectories"),
		),
		mcp.WithString("output",
			mcp.Description("Optional .xlsx path for the spreadsheet report"),
		),
	}, checkOptions()...)
	s.mcpServer.AddTool(mcp.NewTool(descriptions.StampCheckDirectory, dirOpts...), s.handleCheckDirectory)

	s.mcpServer.AddTool(mcp.NewTool(
		descriptions.StampListDrawings,
		mcp.WithDescription(descriptions.GetToolDescription(descriptions.StampListDrawings)),
		mcp.WithString("directory",
			mcp.Description("Directory to list (uses the drawing directory if empty)"),
		),
		mcp.WithBoolean("recursive",
			mcp.Description("Include PDFs in subdirectories"),
		),
	), s.handleListDrawings)

	s.mcpServer.AddTool(mcp.NewTool(
		descriptions.StampReference,
		mcp.WithDescription(descriptions.GetToolDescription(descriptions.StampReference)),
	), s.handleReference)
}

// checkRequest reads the keyword and toggle arguments of a tool call
func checkRequest(request mcp.CallToolRequest) checker.Request {
	args := request.GetArguments()
	req := checker.DefaultRequest()

	if kw, ok := args["keywords"].(string); ok {
		req.Keywords = stamp.SplitKeywordText(kw)
	}
	if v, ok := args["check_filename"].(bool); ok {
		req.Options.CheckFilename = v
	}
	if v, ok := args["check_sheet"].(bool); ok {
		req.Options.CheckSheet = v
	}
	if v, ok := args["check_project"].(bool); ok {
		req.Options.CheckProject = v
	}

	return req
}

// Handler functions
func (s *Server) handleCheckFile(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := request.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result, err := s.checker.CheckFile(ctx, path, checkRequest(request))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatDocumentResult(1, *result)), nil
}

func (s *Server) handleCheckDirectory(ctx context.Context, request mcp.CallToolRequest) (
	*mcp.CallToolResult, error,
) {
	args := request.GetArguments()

	directory := ""
	if dir, ok := args["directory"].(string); ok {
		directory = dir
	}
	recursive, _ := args["recursive"].(bool)

	rep, err := s.checker.CheckDirectory(ctx, directory, recursive, checkRequest(request))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	responseText := formatBatchReport(rep)

	if output, ok := args["output"].(string); ok && output != "" {
		written, err := s.checker.SaveWorkbook(output, rep)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		responseText += fmt.Sprintf("\nReport written to: %s\n", written)
	}

	return mcp.NewToolResultText(responseText), nil
}

func (s *Server) handleListDrawings(_ context.Context, request mcp.CallToolRequest) (
	*mcp.CallToolResult, error,
) {
	args := request.GetArguments()
	directory, _ := args["directory"].(string)
	recursive, _ := args["recursive"].(bool)

	list, err := s.checker.ListDrawings(directory, recursive)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatDrawingList(list)), nil
}

func (s *Server) handleReference(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(formatReference(s.checker.Reference())), nil
}

// Formatting functions
func formatDocumentResult(n int, result stamp.DocumentResult) string {
	row := report.NewRow(result)

	text := fmt.Sprintf("%d. %s\n", n, row.FileName)
	text += fmt.Sprintf("   Project: %s - %s\n", row.ProjectCode, row.ProjectDescription)
	text += fmt.Sprintf("   Sheet: %s\n", row.SheetNumber)
	text += fmt.Sprintf("   Name found: %s | Sheet found: %s | Signed: %s | Project found: %s\n",
		row.NameFound, row.SheetFound, row.FileSigned, row.ProjectFound)
	text += fmt.Sprintf("   Keywords: %s\n", row.FoundKeywords)
	return text
}

func formatBatchReport(rep *stamp.BatchReport) string {
	s := rep.Summary

	text := "Stamp Check Summary\n"
	text += fmt.Sprintf("Total files: %d\n", s.Total)
	text += fmt.Sprintf("Name found: %d\n", s.FilenameFound)
	text += fmt.Sprintf("Sheet found: %d\n", s.SheetFound)
	text += fmt.Sprintf("Signed: %d\n", s.Signed)
	text += fmt.Sprintf("Project found: %d\n", s.ProjectFound)

	if s.Total == 0 {
		return text + "\nNo PDF files found\n"
	}

	text += "\nEngineers:\n"
	if len(s.Engineers) == 0 {
		text += "   No engineer identified\n"
	}
	for _, c := range s.Engineers {
		text += fmt.Sprintf("   %s: %d file(s)\n", c.Key, c.Count)
	}

	text += "\nProjects:\n"
	if len(s.Projects) == 0 {
		text += "   No project identified\n"
	}
	for _, c := range s.Projects {
		text += fmt.Sprintf("   %s: %d file(s)\n", c.Key, c.Count)
	}

	text += "\nFiles:\n"
	for i, r := range rep.Results {
		text += formatDocumentResult(i+1, r)
	}

	if len(rep.Failures) > 0 {
		text += "\nFailed files:\n"
		for _, f := range rep.Failures {
			text += fmt.Sprintf("   %s: %v\n", f.FileName, f.Cause)
		}
	}

	return text
}

func formatDrawingList(list *checker.DrawingList) string {
	st := list.Stats
	if st.TotalFiles == 0 {
		return fmt.Sprintf("No PDF files found in %s\n", st.Directory)
	}

	text := fmt.Sprintf("Found %d drawing(s) in %s\n", st.TotalFiles, st.Directory)
	text += fmt.Sprintf("Total size: %d bytes | Total pages: %d | Unreadable: %d\n",
		st.TotalSize, st.TotalPages, st.Unreadable)
	text += fmt.Sprintf("Largest: %s (%d bytes) | Smallest: %s (%d bytes)\n\n",
		st.LargestFileName, st.LargestFileSize, st.SmallestFileName, st.SmallestFileSize)

	for i, d := range list.Drawings {
		text += fmt.Sprintf("%d. %s\n", i+1, d.Name)
		text += fmt.Sprintf("   Size: %d bytes | Pages: %d | Modified: %s\n", d.Size, d.Pages, d.ModifiedTime)
		text += fmt.Sprintf("   Project: %s - %s | Sheet: %s | Signed: %s\n",
			d.Metadata.ProjectCode, d.Metadata.ProjectDescription, d.Metadata.SheetNumber,
			report.YesNo(d.Metadata.Signed))
		if d.Error != "" {
			text += fmt.Sprintf("   Unreadable: %s\n", d.Error)
		}
	}

	return text
}

func formatReference(ref checker.Reference) string {
	text := "Registered engineers:\n"
	for _, e := range ref.Engineers {
		text += fmt.Sprintf("   %s: %v\n", e.Name, e.Registrations)
	}

	text += "\nProject codes:\n"
	for _, p := range ref.Projects {
		text += fmt.Sprintf("   %s: %s\n", p.Code, p.Description)
	}

	text += "\nDefault keywords:\n"
	for _, kw := range ref.DefaultKeywords {
		text += fmt.Sprintf("   %s\n", kw)
	}

	return text
}

// Run serves MCP over the process standard input and output
func (s *Server) Run(ctx context.Context) error {
	return s.Serve(ctx, os.Stdin, os.Stdout)
}

// Serve serves MCP over the given streams until ctx is done or in is closed
func (s *Server) Serve(ctx context.Context, in io.Reader, out io.Writer) error {
	if s.config.IsDebug() {
		log.Printf("Starting stamp checker MCP server in stdio mode")
		log.Printf("Drawing directory: %s", s.checker.Directory())
	}

	stdio := server.NewStdioServer(s.mcpServer)
	stdio.SetErrorLogger(log.Default())

	if err := stdio.Listen(ctx, in, out); err != nil {
		return fmt.Errorf("failed to serve stdio: %w", err)
	}
	return nil
}
