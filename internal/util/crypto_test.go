package util

import (
	"strings"
	"testing"
)

// ============ 密码哈希测试 ============

func TestHashPassword(t *testing.T) {
	password := "MyPassword123"

	hashed, err := HashPassword(password)
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}
	if !strings.HasPrefix(hashed, "$2a$10$") {
		t.Errorf("expected bcrypt cost 10 hash, got %q", hashed)
	}

	// 空密码
	if _, err := HashPassword(""); err == nil {
		t.Error("empty password should be rejected")
	}

	// 相同密码生成不同哈希（随机 salt）
	hashed2, _ := HashPassword(password)
	if hashed == hashed2 {
		t.Error("same password should hash differently each time")
	}
}

func TestCheckPassword(t *testing.T) {
	password := "TestPass456"
	hashed, _ := HashPassword(password)

	if !CheckPassword(password, hashed) {
		t.Error("correct password rejected")
	}
	if CheckPassword("WrongPass", hashed) {
		t.Error("wrong password accepted")
	}
	if CheckPassword("", hashed) {
		t.Error("empty password accepted")
	}
	if CheckPassword(password, "") {
		t.Error("empty hash accepted")
	}
}

func TestCheckPassword_MalformedHashDoesNotPanic(t *testing.T) {
	for _, stored := range []string{"invalid-format", "$2a$10$short", "$2a$99$" + strings.Repeat("x", 53), "salt$hash"} {
		if CheckPassword("anything", stored) {
			t.Errorf("malformed hash %q accepted", stored)
		}
	}
}

func BenchmarkHashPassword(b *testing.B) {
	for i := 0; i < b.N; i++ {
		HashPassword("BenchPassword")
	}
}
