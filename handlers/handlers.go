package handlers

import (
	"context"
	"io"
	"path/filepath"

	"github.com/devmatteini/dag/checksum"
	"github.com/devmatteini/dag/daggithub"
	"github.com/devmatteini/dag/download"
	"github.com/devmatteini/dag/installer"
	"github.com/devmatteini/dag/log"
	"github.com/devmatteini/dag/models"
	"github.com/devmatteini/dag/printer"
	"github.com/devmatteini/dag/strategy"
	"github.com/devmatteini/dag/strategy/interactive"

	"github.com/gobuffalo/envy"
	"github.com/pkg/errors"
	"github.com/spf13/afero"
)

type Config struct {
	Token  string
	APIURL string
}

// ConfigFromEnv reads GITHUB_TOKEN and DAG_API_URL, including values from
// a .env file in the working directory.
func ConfigFromEnv() Config {
	return Config{
		Token:  envy.Get("GITHUB_TOKEN", ""),
		APIURL: envy.Get("DAG_API_URL", ""),
	}
}

type ReleaseClient interface {
	GetRelease(ctx context.Context, repository models.Repository, tag models.Tag) (models.Release, error)
	DownloadAssetStream(ctx context.Context, asset models.Asset) (io.ReadCloser, int64, error)
}

type Handler struct {
	Client   ReleaseClient
	Fs       afero.Fs
	Chooser  interactive.Chooser
	Progress download.Progress
	Out      io.Writer

	Runner installer.Runner
	Sudo   bool
}

// New wires a handler talking to GitHub, reading choices from in and
// printing to out.
func New(ctx context.Context, cfg Config, in io.Reader, out io.Writer) (*Handler, error) {
	client, err := daggithub.NewClient(ctx, cfg.Token, cfg.APIURL)
	if err != nil {
		return nil, err
	}
	defaults := installer.New("", "")
	return &Handler{
		Client:   client,
		Fs:       afero.NewOsFs(),
		Chooser:  &printer.Chooser{In: in, Out: out},
		Progress: printer.NewProgress(out),
		Out:      out,
		Runner:   defaults.Runner,
		Sudo:     defaults.Sudo,
	}, nil
}

type DownloadOptions struct {
	Repository models.Repository
	Tag        models.Tag
	Select     string
	Output     string
	Verify     bool
}

// Download fetches the release, selects one asset and writes it to the
// output path. It returns the path written.
func (h *Handler) Download(ctx context.Context, opts DownloadOptions) (string, error) {
	ctx = log.WithRepository(ctx, opts.Repository)

	release, asset, err := h.selectAsset(ctx, opts.Repository, opts.Tag, opts.Select)
	if err != nil {
		return "", err
	}

	destination := download.OutputPath(opts.Output, asset.Name)
	if err := h.download(ctx, release, asset, destination, opts.Verify); err != nil {
		return "", err
	}
	return destination, nil
}

type InstallOptions struct {
	Repository models.Repository
	Tag        models.Tag
	Select     string
	// Output is the directory the executable is written to.
	Output      string
	InstallFile string
	Verify      bool
}

// Install downloads the selected asset to a temporary directory and
// installs it according to its file type.
func (h *Handler) Install(ctx context.Context, opts InstallOptions) (installer.Result, error) {
	ctx = log.WithRepository(ctx, opts.Repository)

	release, asset, err := h.selectAsset(ctx, opts.Repository, opts.Tag, opts.Select)
	if err != nil {
		return installer.Result{}, err
	}

	tmp, err := afero.TempDir(h.Fs, "", "dag")
	if err != nil {
		return installer.Result{}, errors.Wrap(err, "could not create temporary directory")
	}
	defer h.Fs.RemoveAll(tmp)

	supported, err := installer.Validate(installer.NewFileInfo(asset.Name, filepath.Join(tmp, asset.Name)))
	if err != nil {
		return installer.Result{}, err
	}
	if err := h.download(ctx, release, asset, supported.Path, opts.Verify); err != nil {
		return installer.Result{}, err
	}

	executable := opts.InstallFile
	if executable == "" {
		executable = opts.Repository.Name
	}
	destination := opts.Output
	if destination == "" {
		destination = "."
	}

	inst := &installer.Installer{
		Fs:          h.Fs,
		Runner:      h.Runner,
		Sudo:        h.Sudo,
		Destination: destination,
		Executable:  executable,
	}
	return inst.Install(ctx, supported)
}

// Untag prints the assets of a release with the pattern that selects each.
func (h *Handler) Untag(ctx context.Context, repository models.Repository, tag models.Tag) (models.Release, error) {
	ctx = log.WithRepository(ctx, repository)

	release, err := h.Client.GetRelease(ctx, repository, tag)
	if err != nil {
		return models.Release{}, err
	}
	printer.UntagTable(h.Out, release)
	return release, nil
}

func (h *Handler) selectAsset(ctx context.Context, repository models.Repository, tag models.Tag, pattern string) (models.Release, models.Asset, error) {
	release, err := h.Client.GetRelease(ctx, repository, tag)
	if err != nil {
		return models.Release{}, models.Asset{}, err
	}
	log.G(ctx).Debugf("Found release %s with %d assets", release.Tag, len(release.Assets))

	asset, err := strategy.Resolve(ctx, release, pattern, h.Chooser)
	if err != nil {
		return models.Release{}, models.Asset{}, err
	}
	return release, asset, nil
}

func (h *Handler) download(ctx context.Context, release models.Release, asset models.Asset, destination string, verify bool) error {
	downloader := download.NewDownloaderWithFS(h.Fs, h.Client, h.Progress)
	if err := downloader.Download(ctx, asset, destination); err != nil {
		return err
	}
	if !verify {
		return nil
	}

	verifier := &checksum.Verifier{Source: h.Client, Fs: h.Fs}
	err := verifier.Verify(ctx, release, asset, destination)
	if err == checksum.ErrNoChecksum {
		log.G(ctx).Warnf("Skipping verification of %s: %v", asset.Name, err)
		return nil
	}
	if err != nil {
		if rmErr := h.Fs.Remove(destination); rmErr != nil {
			log.G(ctx).Warnf("Could not remove %s after failed verification: %v", destination, rmErr)
		}
		return err
	}
	log.G(ctx).Infof("Checksum of %s verified", asset.Name)
	return nil
}
