package paa

import "testing"

func TestTypeNames(t *testing.T) {
	tests := []struct {
		tag  Type
		name string
	}{
		{TypeIndexPalette, "IndexPalette"},
		{TypeAI88, "AI88"},
		{TypeARGB1555, "ARGB1555"},
		{TypeARGB4444, "ARGB4444"},
		{TypeARGB8888, "ARGB8888"},
		{TypeDXT1, "DXT1"},
		{TypeDXT2, "DXT2"},
		{TypeDXT3, "DXT3"},
		{TypeDXT4, "DXT4"},
		{TypeDXT5, "DXT5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.tag.String(); got != tt.name {
				t.Errorf("String() = %q, want %q", got, tt.name)
			}
			back, ok := TypeFromName(tt.name)
			if !ok || back != tt.tag {
				t.Errorf("TypeFromName(%q) = %v, %v", tt.name, back, ok)
			}
			if !tt.tag.Known() {
				t.Errorf("Known() = false for %s", tt.name)
			}
		})
	}
}

func TestTypeFromNameCaseInsensitive(t *testing.T) {
	got, ok := TypeFromName("dxt5")
	if !ok || got != TypeDXT5 {
		t.Fatalf("TypeFromName(\"dxt5\") = %v, %v", got, ok)
	}

	if _, ok := TypeFromName("BC7"); ok {
		t.Fatal("TypeFromName(\"BC7\") should fail")
	}
}

func TestUnknownType(t *testing.T) {
	tag := Type(0xABCD)
	if tag.Known() {
		t.Error("Known() = true for 0xABCD")
	}
	if got := tag.String(); got != "Type(0xABCD)" {
		t.Errorf("String() = %q", got)
	}
	if got := tag.PredictSize(4, 4); got != -1 {
		t.Errorf("PredictSize() = %d, want -1", got)
	}
}

func TestPredictSize(t *testing.T) {
	tests := []struct {
		tag    Type
		width  uint16
		height uint16
		want   int
	}{
		{TypeDXT1, 64, 64, 2048},
		{TypeDXT2, 64, 64, 4096},
		{TypeDXT3, 64, 64, 4096},
		{TypeDXT4, 64, 64, 4096},
		{TypeDXT5, 64, 32, 2048},
		{TypeIndexPalette, 16, 16, 256},
		{TypeARGB1555, 16, 16, 512},
		{TypeARGB4444, 16, 16, 512},
		{TypeAI88, 16, 16, 512},
		{TypeARGB8888, 16, 16, 1024},
	}

	for _, tt := range tests {
		t.Run(tt.tag.String(), func(t *testing.T) {
			if got := tt.tag.PredictSize(tt.width, tt.height); got != tt.want {
				t.Errorf("PredictSize(%d, %d) = %d, want %d", tt.width, tt.height, got, tt.want)
			}
		})
	}
}

func TestTypeClasses(t *testing.T) {
	for _, tag := range []Type{TypeDXT1, TypeDXT2, TypeDXT3, TypeDXT4, TypeDXT5} {
		if !tag.IsDXTn() {
			t.Errorf("IsDXTn() = false for %s", tag)
		}
		if tag.IsARGB() {
			t.Errorf("IsARGB() = true for %s", tag)
		}
	}
	for _, tag := range []Type{TypeARGB1555, TypeARGB4444, TypeARGB8888} {
		if !tag.IsARGB() {
			t.Errorf("IsARGB() = false for %s", tag)
		}
	}
	if TypeIndexPalette.HasAlpha() {
		t.Error("HasAlpha() = true for IndexPalette")
	}
	if !TypeDXT1.HasAlpha() {
		t.Error("HasAlpha() = false for DXT1")
	}
}
