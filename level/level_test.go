package level

import "testing"

func TestParseRoundTrip(t *testing.T) {
	text := "#####\n#@$.#\n#####\n"
	lvl, err := Parse(text)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if lvl.W != 5 || lvl.H != 3 {
		t.Fatalf("got W=%d H=%d, want 5x3", lvl.W, lvl.H)
	}
	if lvl.Player != 6 {
		t.Fatalf("Player=%d, want 6", lvl.Player)
	}
	if len(lvl.Boxes) != 1 || lvl.Boxes[0] != 7 {
		t.Fatalf("Boxes=%v, want [7]", lvl.Boxes)
	}
	if len(lvl.Goals) != 1 || lvl.Goals[0] != 8 {
		t.Fatalf("Goals=%v, want [8]", lvl.Goals)
	}

	got := lvl.Dump()
	want := text
	if got != want {
		t.Fatalf("Dump() = %q, want %q", got, want)
	}
}

func TestParsePlayerOnGoalRoundTrip(t *testing.T) {
	text := "#####\n#+*.#\n#####\n"
	lvl, err := Parse(text)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if lvl.Player != 6 {
		t.Fatalf("Player=%d, want 6", lvl.Player)
	}
	if len(lvl.Goals) != 3 {
		t.Fatalf("Goals=%v, want 3 goals", lvl.Goals)
	}
	if len(lvl.Boxes) != 1 || lvl.Boxes[0] != 7 {
		t.Fatalf("Boxes=%v, want [7]", lvl.Boxes)
	}
	if got := lvl.Dump(); got != text {
		t.Fatalf("Dump() = %q, want %q", got, text)
	}
}

func TestParseTrailingWhitespaceAndBlankLinesIgnored(t *testing.T) {
	text := "#####  \n\n#@$.#\n   \n#####\n"
	lvl, err := Parse(text)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if lvl.W != 5 || lvl.H != 3 {
		t.Fatalf("got W=%d H=%d, want 5x3", lvl.W, lvl.H)
	}
}

func TestParseRightPadsShortRows(t *testing.T) {
	text := "#####\n#@$\n#####\n"
	lvl, err := Parse(text)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if lvl.W != 5 {
		t.Fatalf("W=%d, want 5", lvl.W)
	}
	// row 1 is "#@$" padded to "#@$  ": cells 8,9 are floor, not wall.
	if lvl.Wall[8] || lvl.Wall[9] {
		t.Fatalf("padded cells should be floor, got wall mask %v", lvl.Wall)
	}
}

func TestParseRejectsUnrecognizedChar(t *testing.T) {
	_, err := Parse("#####\n#@$x#\n#####\n")
	if err == nil {
		t.Fatal("expected an error for an unrecognized character")
	}
}

func TestParseRejectsNoPlayer(t *testing.T) {
	_, err := Parse("#####\n#.$.#\n#####\n")
	if err != ErrNoPlayer {
		t.Fatalf("got %v, want ErrNoPlayer", err)
	}
}

func TestParseRejectsMultiplePlayers(t *testing.T) {
	_, err := Parse("#####\n#@$@#\n#####\n")
	if err != ErrMultiplePlayers {
		t.Fatalf("got %v, want ErrMultiplePlayers", err)
	}
}

func TestParseRejectsEmptyLevel(t *testing.T) {
	_, err := Parse("\n  \n\t\n")
	if err != ErrEmptyLevel {
		t.Fatalf("got %v, want ErrEmptyLevel", err)
	}
}

func TestLevelBoardBuildsSolvableBoard(t *testing.T) {
	lvl, err := Parse("#####\n#@$.#\n#####\n")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	b, err := lvl.Board()
	if err != nil {
		t.Fatalf("Board: %v", err)
	}
	if b.Done() {
		t.Fatal("expected the level not to start solved")
	}
}
