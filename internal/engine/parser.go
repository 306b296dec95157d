package engine

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"
)

var (
	// First '#' + digit run inside a block; the digit run is the record id.
	reBlockID = regexp.MustCompile(`#(\d+)`)
	// Standalone 0..10 integer token. Word boundaries keep digits embedded
	// in larger numbers (dates, counts) out.
	reScoreToken = regexp.MustCompile(`\b(?:10|\d)\b`)
	// Internal line breaks, with surrounding indentation, collapse to one space.
	reLineBreak = regexp.MustCompile(`[ \t]*\n+[ \t]*`)
	reWordEnd   = regexp.MustCompile(`\w$`)
)

// Parser reconstructs survey records from page-extraction text. It holds no
// state across calls; every Parse is independent and deterministic.
type Parser struct {
	cfg        Config
	logger     *slog.Logger
	reUnitCode *regexp.Regexp
	reFeedback *regexp.Regexp
	phrases    []string // lowercased IgnoredPhrases

	blockHook func(idx int, block string) // fault injection for tests
}

func NewParser(cfg Config, logger *slog.Logger) *Parser {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.MinBlockLength <= 0 {
		cfg.MinBlockLength = DefaultConfig().MinBlockLength
	}
	if cfg.Workers <= 0 {
		cfg.Workers = DefaultConfig().Workers
	}
	phrases := make([]string, len(cfg.IgnoredPhrases))
	for i, p := range cfg.IgnoredPhrases {
		phrases[i] = strings.ToLower(p)
	}
	return &Parser{
		cfg:        cfg,
		logger:     logger,
		reUnitCode: regexp.MustCompile(regexp.QuoteMeta(cfg.UnitCodePrefix) + `[A-Z0-9]+`),
		reFeedback: regexp.MustCompile(wordBounded(cfg.FeedbackMarker) + `(?:\s*\d+)?\s*:?`),
		phrases:    phrases,
	}
}

// Parse normalizes the input, splits it into candidate blocks, and parses
// the blocks into records. Blocks parse independently across a bounded
// worker group; the record sequence always comes back in document order.
// Parse never fails: malformed blocks are dropped, unexpected per-block
// failures are logged and reported via Result.Skipped.
func (p *Parser) Parse(ctx context.Context, text string) Result {
	norm := Normalize(text)
	if !strings.Contains(norm, p.cfg.UnitCodePrefix) {
		p.logger.Warn("parse.no_unit_codes", "bytes", len(norm))
		return Result{}
	}

	blocks := SplitBlocks(norm)
	recs := make([]*SurveyRecord, len(blocks))
	diags := make([]*BlockDiagnostic, len(blocks))

	var g errgroup.Group
	g.SetLimit(p.cfg.Workers)
	for i, block := range blocks {
		if ctx.Err() != nil {
			break
		}
		i, block := i, block
		g.Go(func() error {
			recs[i], diags[i] = p.parseBlock(i, block)
			return nil
		})
	}
	_ = g.Wait()

	var out Result
	for i := range blocks {
		if recs[i] != nil {
			out.Records = append(out.Records, *recs[i])
		}
		if diags[i] != nil {
			out.Skipped = append(out.Skipped, *diags[i])
		}
	}
	return out
}

// parseBlock turns one candidate block into a record, or nil when the block
// is page furniture (too short, or missing id/unit code). A panic while
// parsing is recovered and reported as a diagnostic so one pathological
// block never aborts the rest of the document.
func (p *Parser) parseBlock(idx int, block string) (rec *SurveyRecord, diag *BlockDiagnostic) {
	defer func() {
		if r := recover(); r != nil {
			rec = nil
			diag = &BlockDiagnostic{Index: idx, Snippet: snippet(block), Reason: fmt.Sprintf("panic: %v", r)}
			p.logger.Error("parse.block_skipped", "block", idx, "reason", r, "snippet", snippet(block))
		}
	}()

	if p.blockHook != nil {
		p.blockHook(idx, block)
	}

	if len(block) < p.cfg.MinBlockLength || !strings.Contains(block, p.cfg.UnitCodePrefix) {
		return nil, nil
	}
	m := reBlockID.FindStringSubmatch(block)
	if m == nil {
		return nil, nil
	}
	unitCode := p.reUnitCode.FindString(block)
	if unitCode == "" {
		return nil, nil
	}

	var score *int
	comment, feedback := "", ""
	if ci := strings.Index(block, p.cfg.CommentMarker); ci >= 0 {
		// Everything before the comment marker is the header region. The
		// last standalone 0..10 token there is taken as the score; earlier
		// numbers are usually dates and counts. Lossy by construction.
		if toks := reScoreToken.FindAllString(block[:ci], -1); len(toks) > 0 {
			n, err := strconv.Atoi(toks[len(toks)-1])
			if err == nil {
				score = &n
			}
		}
		rest := block[ci+len(p.cfg.CommentMarker):]
		if loc := p.reFeedback.FindStringIndex(rest); loc != nil {
			comment = rest[:loc[0]]
			feedback = collapseLines(rest[loc[1]:])
		} else {
			comment = rest
		}
		comment = cleanComment(comment)
	}
	if !p.commentValid(comment) {
		// Neuter, never drop: the record survives with an empty comment.
		comment = ""
	}

	return &SurveyRecord{
		ID:             m[1],
		UnitCode:       unitCode,
		Score:          score,
		Comment:        comment,
		LeaderFeedback: feedback,
	}, nil
}

// commentValid rejects near-empty comments and the boilerplate phrases that
// mean "no real feedback was given".
func (p *Parser) commentValid(comment string) bool {
	if len(strings.TrimSpace(comment)) < 3 {
		return false
	}
	lower := strings.ToLower(comment)
	for _, phrase := range p.phrases {
		if strings.Contains(lower, phrase) {
			return false
		}
	}
	return true
}

// cleanComment strips the one ": " remnant left by marker removal and
// flattens the comment onto a single line.
func cleanComment(s string) string {
	s = collapseLines(s)
	s = strings.TrimPrefix(s, ":")
	return strings.TrimSpace(s)
}

// wordBounded quotes a marker and, when it ends in a word character, anchors
// it with \b so it never matches as a prefix of a longer word ("Feedback"
// must not split "Feedbacks").
func wordBounded(marker string) string {
	pat := regexp.QuoteMeta(marker)
	if reWordEnd.MatchString(marker) {
		pat += `\b`
	}
	return pat
}

func collapseLines(s string) string {
	return strings.TrimSpace(reLineBreak.ReplaceAllString(s, " "))
}

func snippet(block string) string {
	const max = 80
	block = strings.TrimSpace(block)
	if len(block) > max {
		return block[:max]
	}
	return block
}
