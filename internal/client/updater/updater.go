package updater

import (
	"bufio"
	"bytes"
	"context"
	"crypto/ed25519"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"
)

// PublicKeyBase64 is the ed25519 release-signing key, injected via
// ldflags. With no key configured, update checks still work but
// installation is refused.
var PublicKeyBase64 = ""

// GitHubRepo is where releases are published.
var GitHubRepo = "ezeqja22/sciencepioneers-cli"

// UpdateInfo describes the outcome of a release check.
type UpdateInfo struct {
	Available      bool
	CurrentVersion string
	LatestVersion  string
	DownloadURL    string
	AssetName      string
}

// UpdateResult describes an installation attempt.
type UpdateResult struct {
	Success       bool
	Message       string
	NeedsRestart  bool
	PendingUpdate bool // windows: staged, applied by script after exit
}

var httpClient = &http.Client{Timeout: 30 * time.Second}

// fetch performs one GET with the headers GitHub expects. Every
// request in this package goes through here.
func fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "spctl")
	req.Header.Set("Accept", "application/vnd.github.v3+json")

	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("GET %s: HTTP %d", url, resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}

// platformAsset names the release binary for the running platform,
// matching the names the release workflow produces.
func platformAsset() string {
	osName := runtime.GOOS
	if osName == "darwin" {
		osName = "macos"
	}
	name := fmt.Sprintf("spctl-%s-%s", osName, runtime.GOARCH)
	if runtime.GOOS == "windows" {
		name += ".exe"
	}
	return name
}

// CheckForUpdate asks GitHub for the latest release and decides whether
// it is newer than the running build. Dev builds never update.
func CheckForUpdate(ctx context.Context, currentVersion string) (*UpdateInfo, error) {
	info := &UpdateInfo{CurrentVersion: currentVersion}
	if strings.HasPrefix(currentVersion, "dev") {
		return info, nil
	}

	body, err := fetch(ctx, fmt.Sprintf("https://api.github.com/repos/%s/releases/latest", GitHubRepo))
	if err != nil {
		// A repo with no releases yet is not an error to the user.
		if strings.Contains(err.Error(), "HTTP 404") {
			return info, nil
		}
		return nil, fmt.Errorf("checking releases: %w", err)
	}

	var release struct {
		TagName string `json:"tag_name"`
		Assets  []struct {
			Name               string `json:"name"`
			BrowserDownloadURL string `json:"browser_download_url"`
		} `json:"assets"`
	}
	if err := json.Unmarshal(body, &release); err != nil {
		return nil, fmt.Errorf("parsing release: %w", err)
	}

	info.LatestVersion = release.TagName
	if release.TagName == "" || sameVersion(release.TagName, currentVersion) {
		return info, nil
	}

	want := platformAsset()
	for _, asset := range release.Assets {
		if asset.Name == want {
			info.Available = true
			info.AssetName = asset.Name
			info.DownloadURL = asset.BrowserDownloadURL
			return info, nil
		}
	}
	// A new tag without a binary for this platform is treated as no
	// update; the release may still be uploading.
	return info, nil
}

func sameVersion(a, b string) bool {
	return strings.TrimPrefix(a, "v") == strings.TrimPrefix(b, "v")
}

// verifier checks release artifacts against the signed checksum
// manifest every release ships (checksums.txt + checksums.sig).
type verifier struct {
	key       ed25519.PublicKey
	checksums []byte
}

func newVerifier() (*verifier, error) {
	if PublicKeyBase64 == "" {
		return nil, fmt.Errorf("update verification not configured (no public key)")
	}
	raw, err := base64.StdEncoding.DecodeString(PublicKeyBase64)
	if err != nil {
		return nil, fmt.Errorf("invalid public key: %w", err)
	}
	if len(raw) != ed25519.PublicKeySize {
		return nil, fmt.Errorf("invalid public key size")
	}
	return &verifier{key: ed25519.PublicKey(raw)}, nil
}

// loadManifest downloads and signature-checks the checksum manifest
// from the release the asset belongs to.
func (v *verifier) loadManifest(ctx context.Context, assetURL, assetName string) error {
	base := strings.TrimSuffix(assetURL, assetName)

	checksums, err := fetch(ctx, base+"checksums.txt")
	if err != nil {
		return fmt.Errorf("downloading checksums: %w", err)
	}
	signature, err := fetch(ctx, base+"checksums.sig")
	if err != nil {
		return fmt.Errorf("downloading signature: %w", err)
	}
	if !ed25519.Verify(v.key, checksums, signature) {
		return fmt.Errorf("signature verification failed, update rejected")
	}
	v.checksums = checksums
	return nil
}

// check matches the binary against its manifest entry.
func (v *verifier) check(assetName string, data []byte) error {
	scanner := bufio.NewScanner(bytes.NewReader(v.checksums))
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) < 2 || fields[len(fields)-1] != assetName {
			continue
		}
		sum := sha256.Sum256(data)
		if got := hex.EncodeToString(sum[:]); got != fields[0] {
			return fmt.Errorf("checksum mismatch for %s: expected %s, got %s", assetName, fields[0], got)
		}
		return nil
	}
	return fmt.Errorf("no checksum entry for %s", assetName)
}

// PerformUpdate downloads, verifies and installs the release described
// by info. Nothing is written to disk before the signature and
// checksum both pass.
func PerformUpdate(ctx context.Context, info *UpdateInfo) (*UpdateResult, error) {
	v, err := newVerifier()
	if err != nil {
		return nil, err
	}
	if err := v.loadManifest(ctx, info.DownloadURL, info.AssetName); err != nil {
		return nil, err
	}

	binary, err := fetch(ctx, info.DownloadURL)
	if err != nil {
		return nil, fmt.Errorf("downloading %s: %w", info.AssetName, err)
	}
	if err := v.check(info.AssetName, binary); err != nil {
		return nil, err
	}

	execPath, err := os.Executable()
	if err != nil {
		return nil, fmt.Errorf("locating current binary: %w", err)
	}
	if execPath, err = filepath.EvalSymlinks(execPath); err != nil {
		return nil, fmt.Errorf("resolving current binary: %w", err)
	}

	if runtime.GOOS == "windows" {
		return stageWindowsUpdate(execPath, binary)
	}
	return swapBinary(execPath, binary)
}

// swapBinary replaces the running binary in place. The temp file lives
// in the same directory so the final rename is atomic.
func swapBinary(execPath string, data []byte) (*UpdateResult, error) {
	tmp, err := os.CreateTemp(filepath.Dir(execPath), "spctl-update-*")
	if err != nil {
		return nil, fmt.Errorf("staging update: %w", err)
	}
	tmpPath := tmp.Name()

	_, writeErr := tmp.Write(data)
	closeErr := tmp.Close()
	if writeErr != nil || closeErr != nil {
		os.Remove(tmpPath)
		return nil, fmt.Errorf("writing update: %w", writeErr)
	}
	if err := os.Chmod(tmpPath, 0755); err != nil {
		os.Remove(tmpPath)
		return nil, fmt.Errorf("marking update executable: %w", err)
	}
	if err := os.Rename(tmpPath, execPath); err != nil {
		os.Remove(tmpPath)
		return nil, fmt.Errorf("installing update: %w", err)
	}

	return &UpdateResult{
		Success:      true,
		Message:      "Update installed successfully. Restart to apply.",
		NeedsRestart: true,
	}, nil
}

// stageWindowsUpdate writes the new binary next to the running one and
// leaves a script that swaps them once the process has exited, since a
// running exe cannot be replaced on Windows.
func stageWindowsUpdate(execPath string, data []byte) (*UpdateResult, error) {
	newPath := execPath + ".new"
	if err := os.WriteFile(newPath, data, 0755); err != nil {
		return nil, fmt.Errorf("staging update: %w", err)
	}

	scriptPath := execPath + ".update.bat"
	script := fmt.Sprintf(`@echo off
:retry
timeout /t 1 /nobreak >nul
del "%s" 2>nul
if exist "%s" goto retry
move "%s" "%s"
del "%%~f0"
`, execPath, execPath, newPath, execPath)

	if err := os.WriteFile(scriptPath, []byte(script), 0755); err != nil {
		os.Remove(newPath)
		return nil, fmt.Errorf("writing update script: %w", err)
	}

	return &UpdateResult{
		Success:       true,
		Message:       "Update downloaded. Close the app and run " + filepath.Base(scriptPath) + " to complete.",
		NeedsRestart:  true,
		PendingUpdate: true,
	}, nil
}
