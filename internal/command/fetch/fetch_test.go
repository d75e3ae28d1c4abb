package fetch

import "testing"

func TestExtension(t *testing.T) {
	testCases := map[string]string{
		"jpeg": "jpg",
		"png":  "png",
		"gif":  "gif",
		"tiff": "tiff",
		"bmp":  "bmp",
		"webp": "png",
		"":     "png",
	}

	for format, expected := range testCases {
		if e, g := expected, extension(format); e != g {
			t.Errorf("extension(%q): expected %q, got %q", format, e, g)
		}
	}
}

func TestDefaultOutput(t *testing.T) {
	type testCase struct {
		Query    string
		Format   string
		Expected string
	}

	testCases := []testCase{
		{Query: "Red Panda", Format: "jpeg", Expected: "red-panda.jpg"},
		{Query: "sunset over the sea", Format: "png", Expected: "sunset-over-the-sea.png"},
		{Query: "🎨🎨", Format: "png", Expected: "image.png"},
		{Query: "?!#", Format: "gif", Expected: "image.gif"},
	}

	for _, tc := range testCases {
		if e, g := tc.Expected, defaultOutput(tc.Query, tc.Format); e != g {
			t.Errorf("defaultOutput(%q, %q): expected %q, got %q", tc.Query, tc.Format, e, g)
		}
	}
}
