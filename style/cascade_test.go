package style

import (
	"testing"

	"understory/property"
)

func TestCascadeLookupPrefersHigherOrigin(t *testing.T) {
	r := property.NewRegistry()
	color := property.Register(r, "color", property.NewMetadataBuilder("black"))

	userAgent := NewStyleBuilder()
	Set(userAgent, color, "gray")
	user := NewStyleBuilder()
	Set(user, color, "blue")

	cascade := NewStyleCascadeBuilder().
		Push(OriginUserAgent, userAgent.Build()).
		Push(OriginUser, user.Build()).
		Build()

	got, ok := Lookup(cascade, SelectorInputs{}, color)
	if !ok || got != "blue" {
		t.Fatalf("Lookup = %v, %v; want blue, true", got, ok)
	}
}

func TestCascadeLookupPrefersHigherSpecificityWithinSameOrigin(t *testing.T) {
	r := property.NewRegistry()
	color := property.Register(r, "color", property.NewMetadataBuilder("black"))

	broad := NewStyleBuilder()
	Set(broad, color, "gray")
	narrow := NewStyleBuilder().Selector(NewSelector(NewIdSet[ClassId](1), IdSet[PseudoClassId]{}))
	Set(narrow, color, "red")

	cascade := NewStyleCascadeBuilder().
		Push(OriginUser, broad.Build()).
		Push(OriginUser, narrow.Build()).
		Build()

	inputs := SelectorInputs{Classes: NewIdSet[ClassId](1)}
	got, ok := Lookup(cascade, inputs, color)
	if !ok || got != "red" {
		t.Fatalf("expected more specific selector to win, got %v, %v", got, ok)
	}
}

func TestCascadeLookupPrefersLaterInsertionOnFullTie(t *testing.T) {
	r := property.NewRegistry()
	color := property.Register(r, "color", property.NewMetadataBuilder("black"))

	first := NewStyleBuilder()
	Set(first, color, "gray")
	second := NewStyleBuilder()
	Set(second, color, "green")

	cascade := NewStyleCascadeBuilder().
		Push(OriginUser, first.Build()).
		Push(OriginUser, second.Build()).
		Build()

	got, ok := Lookup(cascade, SelectorInputs{}, color)
	if !ok || got != "green" {
		t.Fatalf("expected later-pushed style to win a full tie, got %v, %v", got, ok)
	}
}

func TestCascadeLookupSkipsNonMatchingSelectors(t *testing.T) {
	r := property.NewRegistry()
	color := property.Register(r, "color", property.NewMetadataBuilder("black"))

	scoped := NewStyleBuilder().Selector(NewSelector(NewIdSet[ClassId](5), IdSet[PseudoClassId]{}))
	Set(scoped, color, "red")

	cascade := NewStyleCascadeBuilder().Push(OriginUser, scoped.Build()).Build()

	_, ok := Lookup(cascade, SelectorInputs{}, color)
	if ok {
		t.Fatal("expected no match when the selector's required class is absent")
	}
}
