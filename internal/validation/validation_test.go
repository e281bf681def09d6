package validation

import "testing"

func TestValidatePassword(t *testing.T) {
	t.Parallel()

	valid := []string{"CorrectHorse9Battery", "Khardung-La5500m!!"}
	for _, pw := range valid {
		if err := ValidatePassword(pw); err != nil {
			t.Errorf("expected %q valid, got %v", pw, err)
		}
	}

	invalid := []string{
		"short1A",                  // too short
		"alllowercase123456",      // no uppercase
		"ALLUPPERCASE123456",      // no lowercase
		"NoDigitsInHerePassword",  // no digit
	}
	for _, pw := range invalid {
		if err := ValidatePassword(pw); err == nil {
			t.Errorf("expected %q invalid", pw)
		}
	}
}

func TestValidateEmail(t *testing.T) {
	t.Parallel()

	if err := ValidateEmail("tourist@example.com"); err != nil {
		t.Fatalf("expected valid email, got %v", err)
	}
	for _, email := range []string{"", "not-an-email", "a@"} {
		if err := ValidateEmail(email); err == nil {
			t.Errorf("expected %q invalid", email)
		}
	}
}

func TestValidateDocumentURL(t *testing.T) {
	t.Parallel()

	if err := ValidateDocumentURL("https://example.com/id.pdf"); err != nil {
		t.Fatalf("expected valid URL, got %v", err)
	}
	for _, raw := range []string{"", "ftp://example.com/x", "example.com/no-scheme", "/relative/path"} {
		if err := ValidateDocumentURL(raw); err == nil {
			t.Errorf("expected %q invalid", raw)
		}
	}
}
