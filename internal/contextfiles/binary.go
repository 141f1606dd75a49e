package contextfiles

// binarySampleWindow is the number of leading characters inspected when
// classifying content as binary. Content beyond the window is never examined,
// which bounds detection cost on large files.
const binarySampleWindow = 4096

// binaryControlCharacterRatio is the fraction of disallowed control characters
// within the sample window above which content classifies as binary. The
// comparison is strictly greater: a sample at exactly the ratio is text.
const binaryControlCharacterRatio = 0.10

// IsBinaryContent reports whether decoded text content appears to be binary.
// A null character anywhere in the sample window classifies immediately;
// otherwise the share of control characters other than tab, line feed, and
// carriage return decides. Empty content is never binary.
func IsBinaryContent(content string) bool {
	if len(content) == 0 {
		return false
	}

	sample := content
	if len(sample) > binarySampleWindow {
		sample = sample[:binarySampleWindow]
	}

	controlCharacterCount := 0
	for sampleIndex := 0; sampleIndex < len(sample); sampleIndex++ {
		characterValue := sample[sampleIndex]
		if characterValue == 0 {
			return true
		}
		if characterValue == '\t' || characterValue == '\n' || characterValue == '\r' {
			continue
		}
		if characterValue < 32 || characterValue == 127 {
			controlCharacterCount++
		}
	}

	return float64(controlCharacterCount) > binaryControlCharacterRatio*float64(len(sample))
}
