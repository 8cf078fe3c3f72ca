package api

// DecodeBoards parses a board-list payload, such as a saved response
// from the all-boards endpoint. The service error envelope is detected
// and surfaced as *Error.
func DecodeBoards(raw []byte) ([]Board, error) {
	if apiErr := errorEnvelope(raw); apiErr != nil {
		return nil, apiErr
	}
	var boards []Board
	if err := decode(raw, "boards", &boards); err != nil {
		return nil, err
	}
	return boards, nil
}

// DecodeBoard parses a single-board payload.
func DecodeBoard(raw []byte) (*Board, error) {
	if apiErr := errorEnvelope(raw); apiErr != nil {
		return nil, apiErr
	}
	var board Board
	if err := decode(raw, "board", &board); err != nil {
		return nil, err
	}
	return &board, nil
}

// DecodeStacks parses a stack-list payload.
func DecodeStacks(raw []byte) ([]Stack, error) {
	if apiErr := errorEnvelope(raw); apiErr != nil {
		return nil, apiErr
	}
	var stacks []Stack
	if err := decode(raw, "stacks", &stacks); err != nil {
		return nil, err
	}
	return stacks, nil
}
