package registry

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"mcp_market/internal/app/port"
	"mcp_market/internal/domain/entity"
)

// loadTokenFiles reads every *.json file under dir. Each file is named after
// the network identifier it belongs to ("base.json", "base-sepolia.json") and
// contains a JSON array of tokens. Tokens whose network field is empty inherit
// the file's network; tokens naming a different network are skipped.
//
// A missing directory is not an error, it just means no extra tokens.
func loadTokenFiles(dir string, log port.Logger) ([]entity.TokenInfo, error) {
	files, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			if log != nil {
				log.Debug("Token directory does not exist, using built-in tokens only", "path", dir)
			}
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read token directory %s: %w", dir, err)
	}

	var out []entity.TokenInfo
	for _, file := range files {
		if file.IsDir() || !strings.HasSuffix(strings.ToLower(file.Name()), ".json") {
			continue
		}

		fileNetwork := strings.TrimSuffix(file.Name(), filepath.Ext(file.Name()))
		filePath := filepath.Join(dir, file.Name())

		data, err := os.ReadFile(filePath)
		if err != nil {
			if log != nil {
				log.Warn("Failed to read token file, skipping file.", "path", filePath, "error", err)
			}
			continue
		}

		var tokensInFile []entity.TokenInfo
		if err := json.Unmarshal(data, &tokensInFile); err != nil {
			if log != nil {
				log.Warn("Failed to unmarshal tokens from file, skipping file.", "path", filePath, "error", err)
			}
			continue
		}

		loaded := 0
		for _, token := range tokensInFile {
			if token.Address == "" || token.Symbol == "" {
				if log != nil {
					log.Warn("Token entry missing address or symbol, skipping token.",
						"file", filePath, "symbol", token.Symbol, "address", token.Address)
				}
				continue
			}
			if token.Network == "" {
				token.Network = fileNetwork
			} else if !strings.EqualFold(token.Network, fileNetwork) {
				if log != nil {
					log.Warn("Token has mismatched network in file, skipping token.",
						"file", filePath, "token_network", token.Network, "file_network", fileNetwork)
				}
				continue
			}
			out = append(out, token)
			loaded++
		}

		if loaded > 0 && log != nil {
			log.Info("Loaded tokens from file", "network", fileNetwork, "file", file.Name(), "count", loaded)
		}
	}
	return out, nil
}
