// Package verify provides internal debugging tools for qrouter invariant
// checking.
//
// It implements two complementary verification stages:
//
//  1. Static structural checks (lint.go): grid ownership, stacked-via
//     height, and route connectivity.
//  2. Determinism replay (determinism.go): stage 1, then stage 2, then a
//     second stage 2 over an independently rebuilt copy of the same
//     design, checking that the final route set never differs between
//     the second and third pass.
//
// # Usage Example
//
//	issues := verify.RunLint(g, nl)
//	if len(issues) > 0 {
//	    for _, issue := range issues {
//	        log.Printf("[%s] net=%s %s", issue.Type, issue.Net, issue.Message)
//	    }
//	}
//
//	report := verify.GenerateReport(g, nl, determinismIssues)
//	report.WriteReport(os.Stdout)
package verify

import (
	"github.com/sarchlab/qrouter/grid"
)

// IssueType categorizes a verification finding.
type IssueType string

const (
	IssueOwnership    IssueType = "OWNERSHIP"
	IssueViaStack     IssueType = "VIA_STACK"
	IssueConnectivity IssueType = "CONNECTIVITY"
	IssueCost         IssueType = "COST"
	IssueDeterminism  IssueType = "DETERMINISM"
)

// Issue represents a single invariant violation.
type Issue struct {
	Type    IssueType
	Net     string
	Coord   *grid.Coord // nil if not cell-specific
	Message string
	Details map[string]interface{}
}

func newIssue(t IssueType, net, message string, coord *grid.Coord) Issue {
	return Issue{Type: t, Net: net, Coord: coord, Message: message}
}
