package param

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestWallmounted_CanonicalFixedPoints(t *testing.T) {
	for code := uint8(0); code < 6; code++ {
		d := WallmountedToDir(code)
		if got := DirToWallmounted(d); got != code {
			t.Fatalf("code %d: round trip gave %d", code, got)
		}
	}
}

func TestWallmounted_NearestAxis(t *testing.T) {
	cases := []struct {
		d    mgl64.Vec3
		want uint8
	}{
		{mgl64.Vec3{0.1, 0.9, -0.2}, 0},
		{mgl64.Vec3{0.3, -2.5, 1.1}, 1},
		{mgl64.Vec3{4, 1, -3}, 2},
		{mgl64.Vec3{-0.6, 0.5, 0.1}, 3},
		{mgl64.Vec3{0.2, -0.3, 0.9}, 4},
		{mgl64.Vec3{0, 0.1, -0.8}, 5},

		// Exact ties resolve with priority Y > X > Z.
		{mgl64.Vec3{1, 1, 0}, 0},
		{mgl64.Vec3{1, -1, 1}, 1},
		{mgl64.Vec3{1, 0, 1}, 2},
		{mgl64.Vec3{-1, 0, -1}, 3},

		// Zero vector defaults to y+.
		{mgl64.Vec3{}, 0},
	}
	for _, c := range cases {
		if got := DirToWallmounted(c.d); got != c.want {
			t.Errorf("DirToWallmounted(%v) = %d, want %d", c.d, got, c.want)
		}
	}
}

func TestWallmounted_OutOfRangeFallback(t *testing.T) {
	for _, code := range []uint8{6, 7, 200} {
		if d := WallmountedToDir(code); d != (mgl64.Vec3{0, 1, 0}) {
			t.Errorf("WallmountedToDir(%d) = %v, want y+", code, d)
		}
	}
}

func TestFourdir_RoundTrip(t *testing.T) {
	for code := uint8(0); code < 4; code++ {
		d := FourdirToDir(code)
		if got := DirToFourdir(d); got != code {
			t.Fatalf("code %d: round trip gave %d", code, got)
		}
	}
	// Vertical component is ignored.
	if got := DirToFourdir(mgl64.Vec3{0.2, 5, -0.9}); got != 2 {
		t.Errorf("vertical dominance leaked into 4dir: got %d, want 2", got)
	}
	if got := DirToFourdir(mgl64.Vec3{}); got != 0 {
		t.Errorf("zero vector: got %d, want 0", got)
	}
}

func TestFacedir_FrameBijection(t *testing.T) {
	// The 24 codes must name 24 distinct rotations: track the image of
	// the (up, front) frame under each and require no duplicates.
	type frame struct{ up, front mgl64.Vec3 }
	seen := map[frame]uint8{}
	for code := uint8(0); code < 24; code++ {
		f := frame{
			up:    RotateFacedir(mgl64.Vec3{0, 1, 0}, code),
			front: RotateFacedir(mgl64.Vec3{0, 0, 1}, code),
		}
		if prev, dup := seen[f]; dup {
			t.Fatalf("codes %d and %d produce the same frame %v", prev, code, f)
		}
		seen[f] = code
		if f.up != FacedirToDir(code) {
			t.Errorf("code %d: rotated up %v != FacedirToDir %v", code, f.up, FacedirToDir(code))
		}
	}
}

func TestFacedir_EncodeRecoversAxis(t *testing.T) {
	for code := uint8(0); code < 24; code++ {
		got := DirToFacedir(FacedirToDir(code), true)
		wantAxis := code / 4
		if got/4 != wantAxis || got%4 != 0 {
			t.Errorf("code %d: encode(decode) = %d, want axis %d rotation 0", code, got, wantAxis)
		}
	}
}

func TestFacedir_TwoArgReducesToFourdir(t *testing.T) {
	for _, d := range []mgl64.Vec3{{1, 0.2, 0.3}, {-0.1, -2, 0.9}, {0.5, 0, -0.5}} {
		if DirToFacedir(d, false) != DirToFourdir(d) {
			t.Errorf("DirToFacedir(%v, false) != DirToFourdir", d)
		}
	}
}

func TestFacedir_Saturation(t *testing.T) {
	if FacedirToDir(24) != FacedirToDir(0) {
		t.Errorf("code 24 should saturate to code 0")
	}
	if FacedirToDir(255) != FacedirToDir(255%24) {
		t.Errorf("code 255 should saturate modulo 24")
	}
}

func TestDegrotate_RoundTripTolerance(t *testing.T) {
	for _, deg := range []float64{0, 1, 89.3, 180, 271.2, 359.9, 500, -45} {
		code := DegreesToDegrotate(deg)
		back := DegrotateToDegrees(code)
		want := math.Mod(deg, 360)
		if want < 0 {
			want += 360
		}
		diff := math.Abs(back - want)
		if diff > 180 {
			diff = 360 - diff
		}
		if diff > 0.75 {
			t.Errorf("degrotate %v: decoded %v, off by %v (> half bucket)", deg, back, diff)
		}
	}
}

func TestColorDegrotate_RoundTripTolerance(t *testing.T) {
	for _, deg := range []float64{0, 14, 97, 352, -30} {
		code := DegreesToColorDegrotate(deg)
		back := ColorDegrotateToDegrees(code)
		want := math.Mod(deg, 360)
		if want < 0 {
			want += 360
		}
		diff := math.Abs(back - want)
		if diff > 180 {
			diff = 360 - diff
		}
		if diff > 7.5 {
			t.Errorf("colordegrotate %v: decoded %v, off by %v", deg, back, diff)
		}
	}
}

func TestRotateY_Exact(t *testing.T) {
	v := mgl64.Vec3{0.25, -0.5, 0.125}
	if got := RotateY(RotateY(v, 2), 2); got != v {
		t.Errorf("two half turns should be identity, got %v", got)
	}
	if got := RotateY(mgl64.Vec3{0, 0, 1}, 1); got != (mgl64.Vec3{1, 0, 0}) {
		t.Errorf("quarter turn should carry z+ to x+, got %v", got)
	}
}
