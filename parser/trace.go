package parser

import (
	"log/slog"
	"strings"
)

const traceIdentPlaceholder = "  "

// trace logs the entry of a parse function and returns msg for untrace, so a
// parse function can open with `defer p.untrace(p.trace("name"))`.
func (p *Parser) trace(msg string) string {
	if p.tracer == nil {
		return msg
	}
	p.traceLevel++
	p.tracePrint("BEGIN " + msg)
	return msg
}

func (p *Parser) untrace(msg string) {
	if p.tracer == nil {
		return
	}
	p.tracePrint("END " + msg)
	p.traceLevel--
}

func (p *Parser) tracePrint(msg string) {
	p.tracer.Debug(strings.Repeat(traceIdentPlaceholder, p.traceLevel-1)+msg,
		slog.String("token", p.curToken.Text),
		slog.Int("row", p.curToken.Pos.Row),
		slog.Int("col", p.curToken.Pos.Col),
	)
}
