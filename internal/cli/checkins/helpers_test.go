package checkins

import "github.com/julianstephens/miaomotion/internal/storage"

func openJSON(path string) (storage.Provider, error) {
	p, err := storage.Open(path)
	if err != nil {
		return nil, err
	}
	return p, p.Init()
}
