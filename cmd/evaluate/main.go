package main

// Evaluate a rule base against one set of answers without the API:
//   go run ./cmd/evaluate -logic logic.json -responses answers.json [-explain]
// Either path may be "-" to read from stdin.

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"survey-backend/internal/inference"
	"survey-backend/internal/surveylogic"
)

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout); err != nil {
		exitErr(err.Error())
	}
}

func run(args []string, stdin io.Reader, stdout io.Writer) error {
	fs := flag.NewFlagSet("evaluate", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	logicPath := fs.String("logic", "", "Path to the rule base JSON ({premises, rules, subgoals})")
	responsesPath := fs.String("responses", "", "Path to the answers JSON (premise id to value)")
	explain := fs.Bool("explain", false, "Print the per-rule trace and integrity issues as JSON")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if strings.TrimSpace(*logicPath) == "" || strings.TrimSpace(*responsesPath) == "" {
		return errors.New("-logic and -responses are required")
	}
	if *logicPath == "-" && *responsesPath == "-" {
		return errors.New("only one of -logic and -responses may read stdin")
	}

	var logic inference.SurveyLogic
	if err := readJSON(*logicPath, stdin, &logic); err != nil {
		return fmt.Errorf("read logic: %w", err)
	}
	responses := inference.Responses{}
	if err := readJSON(*responsesPath, stdin, &responses); err != nil {
		return fmt.Errorf("read responses: %w", err)
	}

	if !*explain {
		_, err := fmt.Fprintln(stdout, inference.Evaluate(responses, logic))
		return err
	}

	report := struct {
		inference.Outcome
		Issues []surveylogic.Issue `json:"issues"`
	}{
		Outcome: inference.Run(responses, logic),
		Issues:  surveylogic.CheckIntegrity(logic),
	}
	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}

func readJSON(path string, stdin io.Reader, dst any) error {
	var r io.Reader = stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return err
		}
		defer f.Close()
		r = f
	}
	return json.NewDecoder(r).Decode(dst)
}

func exitErr(msg string) {
	fmt.Fprintln(os.Stderr, msg)
	os.Exit(1)
}
