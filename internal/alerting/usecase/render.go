package usecase

import (
	"fmt"
	"html"
	"strings"

	"github.com/UMwai/um-biotech-catalyst-radar/internal/model"
	slackPkg "github.com/UMwai/um-biotech-catalyst-radar/pkg/slack"
)

const smsMaxLen = 160

func renderEmail(c model.AlertContent, severity model.Severity) (subject, body string) {
	subject = fmt.Sprintf("Catalyst alert: %s", c.Ticker)
	if c.Phase != "" {
		subject += " " + c.Phase
	}
	if c.DaysUntil.Valid {
		subject += fmt.Sprintf(" in %d days", c.DaysUntil.Int)
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("<h2>%s</h2>", html.EscapeString(headline(c))))
	if c.SearchName != "" {
		b.WriteString(fmt.Sprintf("<p>Matched your saved search <b>%s</b>.</p>", html.EscapeString(c.SearchName)))
	}
	b.WriteString("<ul>")
	for _, f := range contentFields(c) {
		b.WriteString(fmt.Sprintf("<li><b>%s:</b> %s</li>", html.EscapeString(f.Name), html.EscapeString(f.Value)))
	}
	b.WriteString("</ul>")
	if severity == model.SeverityCritical {
		b.WriteString("<p><b>Severity: CRITICAL</b></p>")
	}

	return subject, b.String()
}

func renderSMS(c model.AlertContent) string {
	if c.Summary != "" {
		msg := c.Summary
		if len(msg) > smsMaxLen {
			msg = msg[:smsMaxLen-3] + "..."
		}
		return msg
	}

	parts := []string{c.Ticker}
	if c.Phase != "" {
		parts = append(parts, c.Phase)
	}
	if c.Indication != "" {
		parts = append(parts, c.Indication)
	}
	if c.CompletionDate != "" {
		parts = append(parts, "readout "+c.CompletionDate)
	}
	if c.DaysUntil.Valid {
		parts = append(parts, fmt.Sprintf("(%dd)", c.DaysUntil.Int))
	}

	msg := strings.Join(parts, " ")
	if len(msg) > smsMaxLen {
		msg = msg[:smsMaxLen-3] + "..."
	}
	return msg
}

func renderSlack(c model.AlertContent, severity model.Severity) slackPkg.Message {
	fields := make([]slackPkg.Field, 0, 6)
	for _, f := range contentFields(c) {
		fields = append(fields, slackPkg.Field(f))
	}
	if severity != "" {
		fields = append(fields, slackPkg.Field{Name: "Severity", Value: strings.ToUpper(string(severity))})
	}

	text := ""
	if c.SearchName != "" {
		text = fmt.Sprintf("Matched saved search *%s*", c.SearchName)
	}

	return slackPkg.Message{
		Title:  headline(c),
		Text:   text,
		Fields: fields,
	}
}

type contentField struct {
	Name  string
	Value string
}

func contentFields(c model.AlertContent) []contentField {
	fields := make([]contentField, 0, 6)
	add := func(name, value string) {
		if value != "" {
			fields = append(fields, contentField{Name: name, Value: value})
		}
	}

	add("Ticker", c.Ticker)
	add("Phase", c.Phase)
	add("Indication", c.Indication)
	add("Completion date", c.CompletionDate)
	if c.DaysUntil.Valid {
		add("Days until readout", fmt.Sprintf("%d", c.DaysUntil.Int))
	}
	add("Market cap", c.MarketCap)
	if c.Enrollment.Valid {
		add("Enrollment", fmt.Sprintf("%d", c.Enrollment.Int))
	}

	return fields
}

func headline(c model.AlertContent) string {
	if c.Summary != "" {
		return c.Summary
	}
	h := c.Ticker
	if c.Phase != "" {
		h += " " + c.Phase
	}
	if c.CompletionDate != "" {
		h += " readout " + c.CompletionDate
	}
	return h
}
