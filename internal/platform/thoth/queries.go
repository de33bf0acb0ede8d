package thoth

const workFields = `
fragment WorkFields on Work {
  workId
  workType
  workStatus
  fullTitle
  title
  subtitle
  edition
  doi
  publicationDate
  place
  widthMm: width(units: MM)
  widthCm: width(units: CM)
  widthIn: width(units: IN)
  heightMm: height(units: MM)
  heightCm: height(units: CM)
  heightIn: height(units: IN)
  pageCount
  pageBreakdown
  imageCount
  tableCount
  audioCount
  videoCount
  license
  copyrightHolder
  landingPage
  lccn
  oclc
  shortAbstract
  longAbstract
  generalNote
  toc
  coverUrl
  coverCaption
  imprint {
    imprintName
    publisher {
      publisherName
      publisherUrl
    }
  }
  publications {
    publicationId
    publicationType
    isbn
    prices {
      currencyCode
      unitPrice
    }
    locations {
      landingPage
      fullTextUrl
      locationPlatform
      canonical
    }
  }
  contributions {
    contributionType
    firstName
    lastName
    fullName
    mainContribution
    contributionOrdinal
    contributor {
      orcid
    }
    affiliations {
      position
      affiliationOrdinal
      institution {
        institutionName
      }
    }
  }
  languages {
    languageCode
    languageRelation
    mainLanguage
  }
  issues {
    issueOrdinal
    series {
      seriesType
      seriesName
      issnPrint
      issnDigital
      seriesUrl
    }
  }
  subjects {
    subjectCode
    subjectType
    subjectOrdinal
  }
  fundings {
    program
    projectName
    projectShortname
    grantNumber
    jurisdiction
    institution {
      institutionName
      institutionDoi
      ror
      countryCode
    }
  }
}
`

const workQuery = `query Work($workId: Uuid!) {
  work(workId: $workId) {
    ...WorkFields
  }
}
` + workFields

const publisherWorksQuery = `query PublisherWorks($publisherId: Uuid!, $limit: Int!) {
  publisher(publisherId: $publisherId) {
    publisherId
  }
  works(publishers: [$publisherId], limit: $limit, order: {field: FULL_TITLE, direction: ASC}) {
    ...WorkFields
  }
}
` + workFields
