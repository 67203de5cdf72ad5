package cache

import (
	"testing"
	"time"
)

func TestTTLSetGetDelete(t *testing.T) {
	c := New(time.Minute)
	if got := c.Get("k"); got != nil {
		t.Fatalf("chave ausente deveria ser nil, veio %q", got)
	}
	c.Set("k", []byte("v"))
	if got := c.Get("k"); string(got) != "v" {
		t.Fatalf("Get = %q", got)
	}
	c.Delete("k")
	if got := c.Get("k"); got != nil {
		t.Fatalf("chave removida deveria ser nil, veio %q", got)
	}
}

func TestTTLExpiry(t *testing.T) {
	c := New(10 * time.Millisecond)
	c.Set("k", []byte("v"))
	time.Sleep(25 * time.Millisecond)
	if got := c.Get("k"); got != nil {
		t.Fatalf("entrada expirada deveria ser nil, veio %q", got)
	}
}

func TestTTLDeletePrefix(t *testing.T) {
	c := New(time.Minute)
	c.Set("patients:1", []byte("a"))
	c.Set("patients:2", []byte("b"))
	c.Set("guardians:1", []byte("c"))
	c.DeletePrefix("patients:")
	if c.Get("patients:1") != nil || c.Get("patients:2") != nil {
		t.Fatal("prefixo não foi limpo")
	}
	if c.Get("guardians:1") == nil {
		t.Fatal("outra chave não podia sumir")
	}
}
