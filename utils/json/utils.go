package json

import "encoding/json"

func SerializeMessageBody[T any](message T) []byte {
	bodyJsonBytes, err := json.Marshal(message)
	if err != nil {
		bodyJsonBytes = []byte("")
	}
	return bodyJsonBytes
}

func SerializeMessageBodyIndent[T any](message T) []byte {
	bodyJsonBytes, err := json.MarshalIndent(message, "", "  ")
	if err != nil {
		bodyJsonBytes = []byte("")
	}
	return bodyJsonBytes
}

func DeserializeMessageBody[T any](message []byte) T {
	var result T
	err := json.Unmarshal(message, &result)
	if err != nil {
		result = *new(T)
	}
	return result
}
