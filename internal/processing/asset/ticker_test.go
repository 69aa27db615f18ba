package asset

import "testing"

func TestBuildAssetsPath_EncodesEveryID(t *testing.T) {
	got := buildAssetsPath([]string{"WAVES", "GwT5y18jcrrppAuj5VkfnHLG8WRf3TNzmhREQkY4pzd8"})
	want := "/v1/assets?ids%5B%5D=WAVES&ids%5B%5D=GwT5y18jcrrppAuj5VkfnHLG8WRf3TNzmhREQkY4pzd8"
	if got != want {
		t.Fatalf("buildAssetsPath = %q, want %q", got, want)
	}
}

func TestBuildAssetsPath_Empty(t *testing.T) {
	if got := buildAssetsPath(nil); got != "/v1/assets?" {
		t.Fatalf("buildAssetsPath(nil) = %q", got)
	}
}
