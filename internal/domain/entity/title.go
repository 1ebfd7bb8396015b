package entity

// placeholderTitle is the value some producers write into the metadata
// title when no real title exists; it must never win over the info title.
const placeholderTitle = "Untitled"

// usableMetadataTitle reports whether a metadata title should override the
// info-dictionary title. Placeholder values are rejected, as are titles
// containing characters from the Unicode Specials block, which indicate an
// incorrectly encoded source string.
func usableMetadataTitle(title string) bool {
	if title == "" || title == placeholderTitle {
		return false
	}
	for _, r := range title {
		if r >= 0xFFF0 && r <= 0xFFFF {
			return false
		}
	}
	return true
}

// EffectiveTitle resolves the document title from the info dictionary and
// the XMP metadata. A usable metadata title takes precedence; otherwise the
// info title is used; the result may be empty when neither is set.
func EffectiveTitle(infoTitle, metadataTitle string) string {
	if usableMetadataTitle(metadataTitle) {
		return metadataTitle
	}
	return infoTitle
}
