package validate

import "strings"

// DefaultTag is used when neither the reference nor an override names a tag.
const DefaultTag = "latest"

// ImageRef is a container image split into repository and tag.
type ImageRef struct {
	Image string
	Tag   string
}

func (r ImageRef) String() string {
	return r.Image + ":" + r.Tag
}

// Image parses a container image reference. An explicit overrideTag wins
// over any tag embedded in value. A colon that belongs to a registry port
// ("registry:5000/app") is not treated as a tag separator.
func Image(value, overrideTag string) (ImageRef, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return ImageRef{}, invalid("image", "image is required")
	}

	image, tag := value, ""
	if i := strings.LastIndex(value, ":"); i > strings.LastIndex(value, "/") {
		image, tag = value[:i], value[i+1:]
	}
	if image == "" {
		return ImageRef{}, invalid("image", "image is required")
	}

	if t := strings.TrimSpace(overrideTag); t != "" {
		tag = t
	}
	if tag == "" {
		tag = DefaultTag
	}
	return ImageRef{Image: image, Tag: tag}, nil
}
