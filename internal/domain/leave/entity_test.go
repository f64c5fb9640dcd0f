package leave

import "testing"

func TestIsUnpaidType(t *testing.T) {
	tests := []struct {
		leaveType string
		want      bool
	}{
		{"unpaid", true},
		{"Unpaid", true},
		{"UNPAID", true},
		{"lop", true},
		{"LOP", true},
		{"without pay", true},
		{"Without Pay", true},
		{"  unpaid  ", true},
		{"Casual", false},
		{"Sick", false},
		{"unpaid leave", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := IsUnpaidType(tt.leaveType); got != tt.want {
			t.Errorf("IsUnpaidType(%q) = %v, want %v", tt.leaveType, got, tt.want)
		}
	}
}

func TestLeaveRequestIsUnpaid(t *testing.T) {
	r := LeaveRequest{LeaveType: "LOP"}
	if !r.IsUnpaid() {
		t.Error("expected LOP request to be unpaid")
	}

	r.LeaveType = "Annual"
	if r.IsUnpaid() {
		t.Error("expected Annual request to be paid")
	}
}
