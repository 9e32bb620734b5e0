package model

// Typed per-analyzer metrics. These are the raw facts each score was
// derived from, kept for auditability alongside the issue list.

// TextMeasure is a piece of extracted text plus its length.
type TextMeasure struct {
	Text   string `json:"text" bson:"text"`
	Length int    `json:"length" bson:"length"`
}

// HeadingCounts summarizes the page's heading structure.
type HeadingCounts struct {
	H1Count int      `json:"h1_count" bson:"h1_count"`
	H1Text  []string `json:"h1_text" bson:"h1_text"`
	H2Count int      `json:"h2_count" bson:"h2_count"`
	H3Count int      `json:"h3_count" bson:"h3_count"`
}

// ImageCounts summarizes alt-text coverage.
type ImageCounts struct {
	Total      int `json:"total" bson:"total"`
	WithAlt    int `json:"with_alt" bson:"with_alt"`
	WithoutAlt int `json:"without_alt" bson:"without_alt"`
}

// LinkCounts classifies links by host.
type LinkCounts struct {
	Internal int `json:"internal_count" bson:"internal_count"`
	External int `json:"external_count" bson:"external_count"`
}

// SEOMetrics are the measurements backing the SEO score.
type SEOMetrics struct {
	Title               TextMeasure   `json:"title" bson:"title"`
	MetaDescription     TextMeasure   `json:"meta_description" bson:"meta_description"`
	Headings            HeadingCounts `json:"headings" bson:"headings"`
	Images              ImageCounts   `json:"images" bson:"images"`
	Links               LinkCounts    `json:"links" bson:"links"`
	CanonicalURL        string        `json:"canonical_url,omitempty" bson:"canonical_url,omitempty"`
	Robots              string        `json:"robots,omitempty" bson:"robots,omitempty"`
	StructuredDataCount int           `json:"structured_data_count" bson:"structured_data_count"`
	HasViewport         bool          `json:"has_viewport" bson:"has_viewport"`
	WordCount           int           `json:"word_count" bson:"word_count"`
}

// ViewportInfo describes the viewport meta tag.
type ViewportInfo struct {
	Present bool   `json:"present" bson:"present"`
	Content string `json:"content,omitempty" bson:"content,omitempty"`
}

// MobileMetrics are the measurements backing the mobile-friendliness score.
type MobileMetrics struct {
	Viewport                ViewportInfo `json:"viewport" bson:"viewport"`
	ResponsiveDesign        bool         `json:"responsive_design" bson:"responsive_design"`
	UsesResponsiveFramework bool         `json:"uses_responsive_framework" bson:"uses_responsive_framework"`
	DetectedFrameworks      []string     `json:"detected_frameworks,omitempty" bson:"detected_frameworks,omitempty"`
	UsesFlash               bool         `json:"uses_flash" bson:"uses_flash"`
	SmallTouchTargets       int          `json:"small_touch_targets" bson:"small_touch_targets"`
	SmallFonts              int          `json:"small_fonts" bson:"small_fonts"`
}

// ResourceCounts tallies page resources by type.
type ResourceCounts struct {
	Stylesheets int `json:"stylesheets" bson:"stylesheets"`
	Scripts     int `json:"scripts" bson:"scripts"`
	Images      int `json:"images" bson:"images"`
	Iframes     int `json:"iframes" bson:"iframes"`
}

// PerformanceMetrics are the measurements backing the performance score.
type PerformanceMetrics struct {
	HTMLSizeKB          float64        `json:"html_size_kb" bson:"html_size_kb"`
	ResourceCounts      ResourceCounts `json:"resource_counts" bson:"resource_counts"`
	TotalResources      int            `json:"total_resources" bson:"total_resources"`
	RenderBlockingCount int            `json:"render_blocking_count" bson:"render_blocking_count"`
	LazyLoadedImages    int            `json:"lazy_loaded_images" bson:"lazy_loaded_images"`
	MinifiedJS          bool           `json:"minified_js" bson:"minified_js"`
	MinifiedCSS         bool           `json:"minified_css" bson:"minified_css"`
}

// AccessibilityMetrics are the measurements backing the accessibility score.
type AccessibilityMetrics struct {
	Lang             string   `json:"lang,omitempty" bson:"lang,omitempty"`
	TotalImages      int      `json:"total_images" bson:"total_images"`
	MissingImageAlts int      `json:"missing_image_alts" bson:"missing_image_alts"`
	FormIssueCount   int      `json:"form_issue_count" bson:"form_issue_count"`
	MissingLandmarks []string `json:"missing_landmarks,omitempty" bson:"missing_landmarks,omitempty"`
	AriaRoleCount    int      `json:"aria_role_count" bson:"aria_role_count"`
	BodyTextLength   int      `json:"body_text_length" bson:"body_text_length"`
}
