package morph

import "testing"

func TestSuffixTableProvider_Lexeme(t *testing.T) {
	s := newSuffixTableProvider()
	forms, ok := s.Lexeme("смирнов")
	if !ok {
		t.Fatal("expected ok=true")
	}
	want := map[string]bool{
		"смирнов":    true,
		"смирнового": true,
		"смирновому": true,
		"смирновым":  true,
		"смирновом":  true,
	}
	if len(forms) != len(want) {
		t.Fatalf("got %d forms, want %d: %v", len(forms), len(want), forms)
	}
	for _, f := range forms {
		if !want[f] {
			t.Errorf("unexpected form %q", f)
		}
	}
}

func TestSuffixTableProvider_Empty(t *testing.T) {
	s := newSuffixTableProvider()
	if _, ok := s.Lexeme(""); ok {
		t.Error("expected ok=false for empty input")
	}
}

func TestSuffixTableProvider_DeclineName_Nominative(t *testing.T) {
	s := newSuffixTableProvider()
	form, ok := s.DeclineName("Иванов", RoleSurname, Nominative, Male)
	if !ok || form != "иванов" {
		t.Errorf("got (%q, %v), want (иванов, true)", form, ok)
	}
}

func TestInferGender_PatronymicSuffix(t *testing.T) {
	p := newPetrovichProvider()
	if g := p.InferGender("Иванович", ""); g != Male {
		t.Errorf("got %v, want Male", g)
	}
	if g := p.InferGender("Ивановна", ""); g != Female {
		t.Errorf("got %v, want Female", g)
	}
}

func TestInferGender_SurnameSuffix(t *testing.T) {
	p := newPetrovichProvider()
	if g := p.InferGender("", "Петров"); g != Male {
		t.Errorf("got %v, want Male", g)
	}
	if g := p.InferGender("", "Петрова"); g != Female {
		t.Errorf("got %v, want Female", g)
	}
}

func TestInferGender_NoMatch_Androgynous(t *testing.T) {
	p := newPetrovichProvider()
	if g := p.InferGender("", "Смит"); g != Androgynous {
		t.Errorf("got %v, want Androgynous", g)
	}
}

func TestCompositeProvider_FallsBackToSuffixTable(t *testing.T) {
	c := &compositeProvider{
		petrovich: stubFailProvider{},
		suffix:    newSuffixTableProvider(),
	}
	forms, ok := c.Lexeme("смирнов")
	if !ok || len(forms) == 0 {
		t.Errorf("expected fallback to succeed, got ok=%v forms=%v", ok, forms)
	}
}

// stubFailProvider always fails, to exercise compositeProvider's fallback path.
type stubFailProvider struct{}

func (stubFailProvider) Lexeme(string) ([]string, bool)               { return nil, false }
func (stubFailProvider) LexemeByCase(string) (map[Case]string, bool) { return nil, false }
func (stubFailProvider) DeclineName(string, NameRole, Case, Gender) (string, bool) {
	return "", false
}
func (stubFailProvider) InferGender(string, string) Gender         { return Androgynous }
func (stubFailProvider) AgreeAdjective(string, Case) (string, bool) { return "", false }
