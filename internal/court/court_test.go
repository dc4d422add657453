package court

import "testing"

func TestList(t *testing.T) {
	list, err := List()
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(list) == 0 {
		t.Fatal("expected non-empty court list")
	}
	if list[0] != "대법원" {
		t.Errorf("first court = %q, want 대법원", list[0])
	}

	// 返回副本，修改不影响后续调用
	list[0] = "changed"
	again, _ := List()
	if again[0] != "대법원" {
		t.Errorf("List() returned shared slice")
	}
}

func TestContains(t *testing.T) {
	if !Contains("서울중앙지방법원") {
		t.Error("expected 서울중앙지방법원 to be known")
	}
	if Contains("없는법원") {
		t.Error("expected unknown court to be rejected")
	}
}
