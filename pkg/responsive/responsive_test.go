package responsive

import "testing"

func TestClassify(t *testing.T) {
	tests := []struct {
		width int
		want  Class
	}{
		{0, Narrow},
		{375, Narrow},
		{767, Narrow},
		{768, Narrow},
		{769, Wide},
		{1280, Wide},
		{3840, Wide},
	}

	for _, tt := range tests {
		if got := Classify(tt.width); got != tt.want {
			t.Errorf("Classify(%d) = %v, want %v", tt.width, got, tt.want)
		}
	}
}

func TestProfiles(t *testing.T) {
	tests := []struct {
		class Class
		want  Profile
	}{
		{Wide, Profile{FieldOfView: 40, OrbitRadius: 40, OrbitHeight: 10, ModelScale: 1, Scrub: 0.5, PanelThreshold: 0.3}},
		{Narrow, Profile{FieldOfView: 50, OrbitRadius: 34, OrbitHeight: 9, ModelScale: 1, Scrub: 0.8, PanelThreshold: 0.2}},
	}

	for _, tt := range tests {
		if got := For(tt.class); got != tt.want {
			t.Errorf("For(%v) = %+v, want %+v", tt.class, got, tt.want)
		}
	}
	if Reference() != For(Wide) {
		t.Errorf("Reference() = %+v, want the wide profile", Reference())
	}
}

func TestForWidth(t *testing.T) {
	c, p := ForWidth(390)
	if c != Narrow || p != For(Narrow) {
		t.Errorf("ForWidth(390) = %v %+v", c, p)
	}
	c, p = ForWidth(1440)
	if c != Wide || p != For(Wide) {
		t.Errorf("ForWidth(1440) = %v %+v", c, p)
	}
}

func TestClassString(t *testing.T) {
	for _, c := range []Class{Wide, Narrow} {
		got, ok := ParseClass(c.String())
		if !ok || got != c {
			t.Errorf("ParseClass(%q) = %v, %v", c.String(), got, ok)
		}
	}
	if _, ok := ParseClass("tablet"); ok {
		t.Error("ParseClass(tablet) should fail")
	}
}
