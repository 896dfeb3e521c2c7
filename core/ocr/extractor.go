package ocr

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
)

// ErrTesseract is returned when the tesseract binary fails or is missing.
var ErrTesseract = errors.New("tesseract failed")

// Candidate is an identifier recognised on a label image.
type Candidate struct {
	// Identifier is the repaired value that matches the configured pattern.
	Identifier string `json:"identifier"`
	// Raw is the word as read by tesseract.
	Raw string `json:"raw"`
	// Confidence is the tesseract word confidence, 0 to 100.
	Confidence float64 `json:"confidence"`
	// Corrected is set when Raw only matched after misread repair.
	Corrected bool `json:"corrected"`
	// Source is the base name of the image.
	Source string `json:"source"`
}

// digitFixes maps letters tesseract commonly reads in place of digits.
// Words are upper-cased first, so a misread l arrives as L.
var digitFixes = map[rune]rune{
	'O': '0',
	'I': '1',
	'L': '1',
	'S': '5',
	'B': '8',
	'Z': '2',
}

// Extractor reads identifier candidates from label photos.
type Extractor struct {
	cfg     Config
	pattern *regexp.Regexp
	runner  Runner
	logger  *zap.Logger
}

// NewExtractor compiles the identifier pattern and applies defaults.
func NewExtractor(cfg Config, logger *zap.Logger) (*Extractor, error) {
	return NewExtractorWithRunner(cfg, nil, logger)
}

// NewExtractorWithRunner is NewExtractor with a custom way of running
// tesseract. A nil runner executes the binary.
func NewExtractorWithRunner(cfg Config, runner Runner, logger *zap.Logger) (*Extractor, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.Tesseract == "" {
		cfg.Tesseract = "tesseract"
	}
	if cfg.Lang == "" {
		cfg.Lang = "eng"
	}
	if cfg.Pattern == "" {
		cfg.Pattern = `^[A-Z][0-9]{5}$`
	}
	pattern, err := regexp.Compile(cfg.Pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid identifier pattern %q: %w", cfg.Pattern, err)
	}
	if runner == nil {
		runner = execRunner{logger: logger}
	}
	return &Extractor{
		cfg:     cfg,
		pattern: pattern,
		runner:  runner,
		logger:  logger,
	}, nil
}

// Pattern returns the compiled identifier pattern.
func (e *Extractor) Pattern() *regexp.Regexp {
	return e.pattern
}

// MinConfidence returns the configured auto-accept confidence.
func (e *Extractor) MinConfidence() float64 {
	return e.cfg.MinConfidence
}

func (e *Extractor) runContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if e.cfg.TimeoutSeconds > 0 {
		return context.WithTimeout(ctx, time.Duration(e.cfg.TimeoutSeconds)*time.Second)
	}
	return context.WithCancel(ctx)
}

// Version returns the first line of "tesseract --version".
func (e *Extractor) Version(ctx context.Context) (string, error) {
	ctx, cancel := e.runContext(ctx)
	defer cancel()

	out, errb, err := e.runner.Run(ctx, e.cfg.Tesseract, "--version")
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrTesseract, err)
	}
	// Older releases print the version to stderr
	text := strings.TrimSpace(string(out))
	if text == "" {
		text = strings.TrimSpace(string(errb))
	}
	first, _, _ := strings.Cut(text, "\n")
	return strings.TrimSpace(first), nil
}

// Extract runs tesseract on one image and returns the recognised identifiers
// in reading order. Repeated identifiers keep their best confidence.
func (e *Extractor) Extract(ctx context.Context, imagePath string) ([]Candidate, error) {
	ctx, cancel := e.runContext(ctx)
	defer cancel()

	args := []string{imagePath, "stdout", "-l", e.cfg.Lang}
	if e.cfg.PSM > 0 {
		args = append(args, "--psm", strconv.Itoa(e.cfg.PSM))
	}
	if e.cfg.TessdataDir != "" {
		args = append(args, "--tessdata-dir", e.cfg.TessdataDir)
	}
	args = append(args, "tsv")

	out, errb, err := e.runner.Run(ctx, e.cfg.Tesseract, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v: %s", ErrTesseract, filepath.Base(imagePath), err, truncate(strings.TrimSpace(string(errb)), 512))
	}

	words := parseTSV(string(out))
	source := filepath.Base(imagePath)

	var candidates []Candidate
	seen := make(map[string]int)
	for _, w := range words {
		id, corrected, ok := e.match(w.text)
		if !ok {
			continue
		}
		c := Candidate{Identifier: id, Raw: w.text, Confidence: w.conf, Corrected: corrected, Source: source}
		if i, dup := seen[id]; dup {
			if c.Confidence > candidates[i].Confidence {
				candidates[i] = c
			}
			continue
		}
		seen[id] = len(candidates)
		candidates = append(candidates, c)
	}

	e.logger.Debug("Extracted identifiers",
		zap.String("image", source),
		zap.Int("words", len(words)),
		zap.Int("candidates", len(candidates)),
	)
	return candidates, nil
}

// ExtractAll extracts every image in order. The first failing image aborts.
func (e *Extractor) ExtractAll(ctx context.Context, imagePaths []string) ([]Candidate, error) {
	var all []Candidate
	for _, p := range imagePaths {
		c, err := e.Extract(ctx, p)
		if err != nil {
			return nil, err
		}
		all = append(all, c...)
	}
	return all, nil
}

// match cleans a word and checks it against the pattern, repairing digit
// misreads after the first character when needed.
func (e *Extractor) match(word string) (string, bool, bool) {
	word = strings.ToUpper(strings.Trim(word, ".,;:!?()[]{}\"'-_/"))
	if word == "" {
		return "", false, false
	}
	if e.pattern.MatchString(word) {
		return word, false, true
	}

	runes := []rune(word)
	for i := 1; i < len(runes); i++ {
		if fix, ok := digitFixes[runes[i]]; ok {
			runes[i] = fix
		}
	}
	repaired := string(runes)
	if repaired != word && e.pattern.MatchString(repaired) {
		return repaired, true, true
	}
	return "", false, false
}

type tsvWord struct {
	text string
	conf float64
}

// parseTSV reads word level rows (level 5) from tesseract TSV output.
func parseTSV(out string) []tsvWord {
	lines := strings.Split(out, "\n")
	if len(lines) == 0 {
		return nil
	}

	header := strings.Split(strings.TrimRight(lines[0], "\r"), "\t")
	levelCol, confCol, textCol := -1, -1, -1
	for i, h := range header {
		switch strings.TrimSpace(h) {
		case "level":
			levelCol = i
		case "conf":
			confCol = i
		case "text":
			textCol = i
		}
	}
	if confCol < 0 || textCol < 0 {
		return nil
	}

	var words []tsvWord
	for _, ln := range lines[1:] {
		cols := strings.Split(strings.TrimRight(ln, "\r"), "\t")
		if len(cols) <= textCol || len(cols) <= confCol {
			continue
		}
		if levelCol >= 0 && strings.TrimSpace(cols[levelCol]) != "5" {
			continue
		}
		text := strings.TrimSpace(cols[textCol])
		if text == "" {
			continue
		}
		conf, err := strconv.ParseFloat(strings.TrimSpace(cols[confCol]), 64)
		if err != nil || conf < 0 {
			continue
		}
		words = append(words, tsvWord{text: text, conf: conf})
	}
	return words
}
