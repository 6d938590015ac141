// Package walletloader reads the tracked wallet addresses from a plain text
// file, one 0x-prefixed address per line, with # comments allowed.
package walletloader

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"mcp_market/internal/app/port"
	"mcp_market/internal/domain/entity"
)

// WalletFileLoader implements the port.WalletProvider interface by loading wallets from a file.
type WalletFileLoader struct {
	filePath string
	logger   port.Logger
}

// New creates a WalletFileLoader reading from filePath.
func New(filePath string, log port.Logger) port.WalletProvider {
	return &WalletFileLoader{
		filePath: filePath,
		logger:   log,
	}
}

// GetWallets reads wallet addresses from the configured file path. Blank
// lines and comments are skipped; malformed addresses are logged and skipped
// rather than failing the whole load.
func (l *WalletFileLoader) GetWallets() ([]entity.Wallet, error) {
	file, err := os.Open(l.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open wallet file %s: %w", l.filePath, err)
	}
	defer file.Close()

	var wallets []entity.Wallet
	scanner := bufio.NewScanner(file)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if !(strings.HasPrefix(line, "0x") && len(line) == 42) {
			if l.logger != nil {
				l.logger.Warn("Skipping invalid wallet address format",
					"file", l.filePath, "line_number", lineNum, "address", line)
			}
			continue
		}
		wallets = append(wallets, entity.Wallet{Address: line})
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error scanning wallet file %s: %w", l.filePath, err)
	}

	if l.logger != nil {
		l.logger.Info("Wallets loaded successfully from file", "count", len(wallets), "path", l.filePath)
	}
	return wallets, nil
}
