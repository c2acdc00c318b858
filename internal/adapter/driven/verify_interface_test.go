package driven

import (
	port "github.com/alorle/tvdesk/internal/port/driven"
)

// Compile-time check that PlaylistHTTPFetcher implements PlaylistFetcher interface
var _ port.PlaylistFetcher = (*PlaylistHTTPFetcher)(nil)

// Compile-time check that LogoFileCache implements LogoCache interface
var _ port.LogoCache = (*LogoFileCache)(nil)

// Compile-time check that EPGXMLFetcher implements EPGFetcher interface
var _ port.EPGFetcher = (*EPGXMLFetcher)(nil)

// Compile-time check that GuideBoltDBRepository implements GuideRepository interface
var _ port.GuideRepository = (*GuideBoltDBRepository)(nil)

// Compile-time check that LibraryBoltDBRepository implements SettingsRepository interface
var _ port.SettingsRepository = (*LibraryBoltDBRepository)(nil)
