package api

import "testing"

func TestValidateBody_Create(t *testing.T) {
	t.Run("valid body", func(t *testing.T) {
		decoded, verr := ValidateBody(&TaskCreateShape, []byte(`{"name":"buy milk","completed":true}`))
		if verr != nil {
			t.Fatalf("ValidateBody() error = %v", verr)
		}
		if decoded["name"] != "buy milk" {
			t.Errorf("name = %v, want %q", decoded["name"], "buy milk")
		}
		if decoded["completed"] != true {
			t.Errorf("completed = %v, want true", decoded["completed"])
		}
	})

	t.Run("name only", func(t *testing.T) {
		if _, verr := ValidateBody(&TaskCreateShape, []byte(`{"name":"buy milk"}`)); verr != nil {
			t.Errorf("ValidateBody() error = %v", verr)
		}
	})

	t.Run("missing name", func(t *testing.T) {
		_, verr := ValidateBody(&TaskCreateShape, []byte(`{"completed":true}`))
		if verr == nil {
			t.Fatal("expected a validation error")
		}
		if verr.Code != codeValidation {
			t.Errorf("Code = %q, want %q", verr.Code, codeValidation)
		}
		if len(verr.Fields) != 1 || verr.Fields[0].Rule != "required" {
			t.Errorf("Fields = %+v, want one required error", verr.Fields)
		}
	})

	t.Run("null name counts as missing", func(t *testing.T) {
		_, verr := ValidateBody(&TaskCreateShape, []byte(`{"name":null}`))
		if verr == nil || verr.Code != codeValidation {
			t.Errorf("ValidateBody() = %v, want validation error", verr)
		}
	})

	t.Run("empty name", func(t *testing.T) {
		_, verr := ValidateBody(&TaskCreateShape, []byte(`{"name":""}`))
		if verr == nil {
			t.Fatal("expected a validation error")
		}
		if verr.Fields[0].Rule != "minLength" {
			t.Errorf("Rule = %q, want %q", verr.Fields[0].Rule, "minLength")
		}
	})

	t.Run("name too long", func(t *testing.T) {
		long := make([]byte, 256)
		for i := range long {
			long[i] = 'x'
		}
		_, verr := ValidateBody(&TaskCreateShape, []byte(`{"name":"`+string(long)+`"}`))
		if verr == nil {
			t.Fatal("expected a validation error")
		}
		if verr.Fields[0].Rule != "maxLength" {
			t.Errorf("Rule = %q, want %q", verr.Fields[0].Rule, "maxLength")
		}
	})

	t.Run("wrong types", func(t *testing.T) {
		_, verr := ValidateBody(&TaskCreateShape, []byte(`{"name":42,"completed":"yes"}`))
		if verr == nil {
			t.Fatal("expected a validation error")
		}
		if len(verr.Fields) != 2 {
			t.Fatalf("Fields = %+v, want two type errors", verr.Fields)
		}
		for _, f := range verr.Fields {
			if f.Rule != "type" {
				t.Errorf("Rule = %q, want %q", f.Rule, "type")
			}
		}
	})

	t.Run("not a JSON object", func(t *testing.T) {
		_, verr := ValidateBody(&TaskCreateShape, []byte(`[1,2,3]`))
		if verr == nil || verr.Code != codeValidation {
			t.Errorf("ValidateBody() = %v, want validation error", verr)
		}
	})
}

func TestValidateBody_Update(t *testing.T) {
	t.Run("single field is enough", func(t *testing.T) {
		if _, verr := ValidateBody(&TaskUpdateShape, []byte(`{"completed":true}`)); verr != nil {
			t.Errorf("ValidateBody() error = %v", verr)
		}
	})

	t.Run("empty object", func(t *testing.T) {
		_, verr := ValidateBody(&TaskUpdateShape, []byte(`{}`))
		if verr == nil {
			t.Fatal("expected a validation error")
		}
		if verr.Code != codeEmptyUpdate {
			t.Errorf("Code = %q, want %q", verr.Code, codeEmptyUpdate)
		}
	})

	t.Run("empty body", func(t *testing.T) {
		_, verr := ValidateBody(&TaskUpdateShape, nil)
		if verr == nil || verr.Code != codeEmptyUpdate {
			t.Errorf("ValidateBody() = %v, want empty update error", verr)
		}
	})

	t.Run("all nulls is still empty", func(t *testing.T) {
		_, verr := ValidateBody(&TaskUpdateShape, []byte(`{"name":null,"completed":null}`))
		if verr == nil || verr.Code != codeEmptyUpdate {
			t.Errorf("ValidateBody() = %v, want empty update error", verr)
		}
	})

	t.Run("unknown fields ignored", func(t *testing.T) {
		_, verr := ValidateBody(&TaskUpdateShape, []byte(`{"bogus":true}`))
		if verr == nil || verr.Code != codeEmptyUpdate {
			t.Errorf("ValidateBody() = %v, want empty update error", verr)
		}
	})
}
