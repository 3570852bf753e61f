// Command analyze runs a single analysis from the command line:
//
//	analyze -balance-sheet bs.pdf -income-statement is.pdf -cash-flow cf.pdf -question "What is the revenue?"
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"fin-analyst/logic/chat"
	"fin-analyst/logic/ingestion/parser"
	"fin-analyst/pkg/logger"
	"fin-analyst/service"
	"fin-analyst/types"
	"fin-analyst/vars"

	"go.uber.org/zap"
)

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("analyze", flag.ContinueOnError)
	fs.SetOutput(stderr)
	paths := map[types.StatementKind]*string{
		types.BalanceSheet:      fs.String("balance-sheet", "", "balance sheet PDF"),
		types.IncomeStatement:   fs.String("income-statement", "", "income statement PDF"),
		types.CashFlowStatement: fs.String("cash-flow", "", "cash flow statement PDF"),
	}
	question := fs.String("question", "", "question about the company")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	cfg, err := vars.Load()
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	zlog, err := logger.New(cfg.LogLevel)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	defer zlog.Sync()

	req := &types.AnalysisRequest{
		Question:  *question,
		Documents: make(map[types.StatementKind]*types.UploadedDocument, len(paths)),
	}
	for kind, path := range paths {
		if *path == "" {
			continue
		}
		f, err := os.Open(*path)
		if err != nil {
			fmt.Fprintf(stderr, "open %s: %v\n", *path, err)
			return 1
		}
		defer f.Close()
		req.Documents[kind] = &types.UploadedDocument{Kind: kind, FileName: *path, Body: f}
	}

	extractor, err := parser.NewExtractor(ctx, parser.WithTimeout(cfg.ExtractTimeout))
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	chatModel, err := chat.NewGroqChatModel(ctx, cfg.LLM)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}

	svc := service.NewAnalysisService(extractor, chatModel,
		service.WithLogger(zlog),
		service.WithModelName(cfg.LLM.Model),
	)
	result, err := svc.Analyze(ctx, req)
	if err != nil {
		zlog.Debug("analysis failed", zap.Error(err))
		if service.IsExtractionError(err) {
			fmt.Fprintln(stderr, service.ExtractionFailedMessage)
		}
		fmt.Fprintln(stderr, err)
		return 1
	}

	fmt.Fprintln(stdout, "Analysis Result:")
	fmt.Fprintln(stdout, result.Answer)
	return 0
}
