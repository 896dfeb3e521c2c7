// Package ocr recognises item identifiers on photographed labels.
//
// Recognition is a two step protocol. The Extractor runs tesseract in TSV
// mode, keeps words matching the identifier pattern (repairing the usual
// letter for digit misreads) and returns them as candidates with their word
// confidence. A Confirmer then decides which candidates are used:
// ThresholdConfirmer accepts confident, unrepaired reads and PromptConfirmer
// asks on a terminal for the rest.
//
// The tesseract binary is called through the Runner interface so tests can
// stub it.
package ocr
