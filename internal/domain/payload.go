package domain

// StatePayload is the wire form of a ViewState. Headlines is only set for
// success states and is kept even when empty.
type StatePayload struct {
	Kind      string     `json:"kind"`
	Headlines []Headline `json:"headlines,omitzero"`
	Message   string     `json:"message,omitempty"`
}

func PayloadOf(state ViewState) StatePayload {
	switch st := state.(type) {
	case Success:
		headlines := st.Headlines
		if headlines == nil {
			headlines = []Headline{}
		}
		return StatePayload{Kind: KindSuccess, Headlines: headlines}
	case Error:
		return StatePayload{Kind: KindError, Message: st.Message}
	default:
		return StatePayload{Kind: KindLoading}
	}
}
