package ocr

// Config holds configuration for label recognition.
type Config struct {
	// Tesseract is the binary name or absolute path.
	Tesseract string `mapstructure:"tesseract" default:"tesseract"`
	// Lang is the tesseract language list, e.g. "eng" or "deu+eng".
	Lang string `mapstructure:"lang" default:"eng"`
	// PSM is the page segmentation mode. 11 finds sparse text on labels.
	PSM int `mapstructure:"psm" default:"11"`
	// TessdataDir overrides the trained data directory.
	TessdataDir string `mapstructure:"tessdata_dir" default:""`
	// Pattern is the regular expression a recognised identifier must match.
	Pattern string `mapstructure:"pattern" default:"^[A-Z][0-9]{5}$"`
	// MinConfidence is the word confidence (0-100) at which candidates are
	// accepted without review.
	MinConfidence float64 `mapstructure:"min_confidence" default:"80"`
	// TimeoutSeconds bounds a single tesseract run.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"60"`
}
