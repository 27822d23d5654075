package pbs

// ResourceProfile is the resolved resource request of one job.
type ResourceProfile struct {
	Project  string
	Queue    string
	Walltime string
	MemGB    int
	NCPUs    int
	Storage  string
}

// ProfileForYear maps a year to its resource profile. Total over all years:
// an override wins when present, the default walltime applies otherwise.
func (c *SiteConfig) ProfileForYear(year int) ResourceProfile {
	profile := c.baseProfile()
	profile.Walltime = c.DefaultWalltime
	if wt, ok := c.WalltimeOverrides[year]; ok {
		profile.Walltime = wt
	}
	return profile
}

// DirProfile is the profile of a directory-pair job. Its walltime is fixed
// and distinct from the per-year default.
func (c *SiteConfig) DirProfile() ResourceProfile {
	profile := c.baseProfile()
	profile.Walltime = c.DirWalltime
	return profile
}

func (c *SiteConfig) baseProfile() ResourceProfile {
	return ResourceProfile{
		Project: c.Project,
		Queue:   c.Queue,
		MemGB:   c.MemGB,
		NCPUs:   c.NCPUs,
		Storage: c.Storage,
	}
}
