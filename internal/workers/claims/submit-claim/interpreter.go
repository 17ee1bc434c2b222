package submitclaim

import (
	"errors"
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

// Kind is the classification of a response page.
type Kind string

const (
	KindSuccess      Kind = "success"
	KindKnownFailure Kind = "known_failure"
	KindUnrecognized Kind = "unrecognized"
)

var (
	ErrEmptyResponse = errors.New("EMPTY_RESPONSE")
	ErrAlertNotFound = errors.New("ALERT_NOT_FOUND")
	ErrUnknownAlert  = errors.New("UNKNOWN_ALERT")
)

var (
	claimNumberPattern = regexp.MustCompile(`el número es: (\S+)`)
	duplicatePattern   = regexp.MustCompile(`ya tiene un reclamo ingresado`)
)

// Interpretation is the result of reading a response page.
// Reason is set only for KindUnrecognized.
type Interpretation struct {
	Kind    Kind
	ClaimID string
	Message string
	Reason  error
}

// Interpret reads the danger alert of a response page. Anything without a
// known marker is KindUnrecognized.
func Interpret(raw string) Interpretation {
	if raw == "" {
		return Interpretation{Kind: KindUnrecognized, Reason: ErrEmptyResponse}
	}

	doc, err := html.Parse(strings.NewReader(raw))
	if err != nil {
		return Interpretation{Kind: KindUnrecognized, Reason: err}
	}

	alert := findAlert(doc)
	if alert == nil {
		return Interpretation{Kind: KindUnrecognized, Reason: ErrAlertNotFound}
	}

	text := textContent(alert)

	if m := claimNumberPattern.FindStringSubmatch(text); m != nil {
		return Interpretation{Kind: KindSuccess, ClaimID: m[1]}
	}

	cleaned := strings.TrimSpace(strings.NewReplacer("\n", "", "\t", "", "\r", "").Replace(text))
	if duplicatePattern.MatchString(cleaned) {
		return Interpretation{Kind: KindKnownFailure, Message: cleaned}
	}

	return Interpretation{Kind: KindUnrecognized, Reason: ErrUnknownAlert}
}

// findAlert returns the first div, in document order, whose class attribute
// contains both "alert" and "alert-danger".
func findAlert(n *html.Node) *html.Node {
	if n.Type == html.ElementNode && n.Data == "div" {
		for _, attr := range n.Attr {
			if attr.Key == "class" && strings.Contains(attr.Val, "alert") && strings.Contains(attr.Val, "alert-danger") {
				return n
			}
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findAlert(c); found != nil {
			return found
		}
	}
	return nil
}

func textContent(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return sb.String()
}
