package quote

import "testing"

func TestChoosePhonePriorityOrder(t *testing.T) {
	tests := []struct {
		name   string
		record map[string]string
		want   string
		wantOK bool
	}{
		{
			name: "voice wins over mobile",
			record: map[string]string{
				"CustomerVoicePhone":  "(111) 111-1111",
				"CustomerMobilePhone": "(222) 222-2222",
			},
			want:   "11111111111",
			wantOK: true,
		},
		{
			name: "text wins over home and work",
			record: map[string]string{
				"CustomerTextPhone": "(333) 333-3333",
				"CustomerHomePhone": "(444) 444-4444",
				"CustomerWorkPhone": "(555) 555-5555",
			},
			want:   "13333333333",
			wantOK: true,
		},
		{
			name: "unusable high priority field is skipped",
			record: map[string]string{
				"CustomerVoicePhone":  "n/a",
				"CustomerMobilePhone": "(222) 222-2222",
			},
			want:   "12222222222",
			wantOK: true,
		},
		{
			name: "work is the last resort",
			record: map[string]string{
				"CustomerWorkPhone": "(555) 555-5555",
			},
			want:   "15555555555",
			wantOK: true,
		},
		{
			name:   "no phone columns",
			record: map[string]string{"CustomerFirstName": "John"},
			wantOK: false,
		},
		{
			name: "all columns unusable",
			record: map[string]string{
				"CustomerVoicePhone":  "",
				"CustomerTextPhone":   "none",
				"CustomerMobilePhone": "-",
			},
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ChoosePhone(tt.record)
			if ok != tt.wantOK {
				t.Fatalf("ChoosePhone ok = %v, want %v", ok, tt.wantOK)
			}
			if got != tt.want {
				t.Errorf("ChoosePhone = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFirstName(t *testing.T) {
	tests := []struct {
		name   string
		record map[string]string
		want   string
	}{
		{
			name:   "dedicated column",
			record: map[string]string{CustomerFirst: " john "},
			want:   "John",
		},
		{
			name:   "fallback to combined name first token",
			record: map[string]string{CustomerName: "jane doe"},
			want:   "Jane",
		},
		{
			name: "dedicated column wins over combined",
			record: map[string]string{
				CustomerFirst: "john",
				CustomerName:  "jane doe",
			},
			want: "John",
		},
		{
			name:   "both absent",
			record: map[string]string{},
			want:   "",
		},
		{
			name:   "combined name blank",
			record: map[string]string{CustomerName: "   "},
			want:   "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FirstName(tt.record); got != tt.want {
				t.Errorf("FirstName = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestLastNameNoFallback(t *testing.T) {
	record := map[string]string{CustomerName: "jane doe"}
	if got := LastName(record); got != "" {
		t.Errorf("LastName = %q, want empty (no combined-name fallback)", got)
	}
	record[CustomerLast] = "doe"
	if got := LastName(record); got != "Doe" {
		t.Errorf("LastName = %q, want %q", got, "Doe")
	}
}
